package i

import (
	"context"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/google/uuid"
)

// Standing is one leaderboard row.
type Standing struct {
	Rank        int
	PlayerID    uuid.UUID
	Username    string
	DisplayName string
	Ticks       int64
}

// Leaderboard ranks manual wins by the fewest ticks taken.
type Leaderboard interface {
	Record(ctx context.Context, difficulty game.Difficulty, playerID uuid.UUID, ticks int64) error
	Top(ctx context.Context, difficulty game.Difficulty, n int64) ([]Standing, error)
}
