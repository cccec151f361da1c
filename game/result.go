package game

import (
	"time"

	"github.com/google/uuid"
)

// Result is the stored outcome of a finished game.
type Result struct {
	ID         uuid.UUID     `bson:"_id" json:"id"`
	PlayerID   uuid.UUID     `bson:"playerId" json:"playerId"`
	Difficulty Difficulty    `bson:"difficulty" json:"difficulty"`
	Mode       Mode          `bson:"mode" json:"mode"`
	Status     Status        `bson:"status" json:"status"`
	Hits       int           `bson:"hits" json:"hits"`
	Ticks      int64         `bson:"ticks" json:"ticks"`
	Duration   time.Duration `bson:"duration" json:"duration"`
	FinishedAt time.Time     `bson:"finishedAt" json:"finishedAt"`
}
