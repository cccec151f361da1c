package service

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardPrefix   = "vinom-chase"
	defaultLeaderboardCapacity = 100
	leaderboardKeyFmt          = "%s:leaderboard:%s"
)

var _ i.Leaderboard = &Leaderboard{}

// Leaderboard keeps each player's fewest ticks to win per difficulty.
type Leaderboard struct {
	store    i.SortedStore
	users    i.UserRepo
	prefix   string
	capacity int64
}

// NewLeaderboard creates a Leaderboard over store. users resolves names for
// Top and may be nil.
func NewLeaderboard(store i.SortedStore, users i.UserRepo, prefix string) *Leaderboard {
	if prefix == "" {
		prefix = defaultLeaderboardPrefix
	}
	return &Leaderboard{
		store:    store,
		users:    users,
		prefix:   prefix,
		capacity: defaultLeaderboardCapacity,
	}
}

func (l *Leaderboard) key(d game.Difficulty) string {
	return fmt.Sprintf(leaderboardKeyFmt, l.prefix, d)
}

// Record implements i.Leaderboard. Slower runs never replace a better one.
func (l *Leaderboard) Record(ctx context.Context, difficulty game.Difficulty, playerID uuid.UUID, ticks int64) error {
	key := l.key(difficulty)
	if err := l.store.KeepLowest(ctx, key, float64(ticks), playerID.String()); err != nil {
		return fmt.Errorf("recording score: %w", err)
	}
	if err := l.store.Trim(ctx, key, l.capacity); err != nil {
		return fmt.Errorf("trimming leaderboard: %w", err)
	}
	return nil
}

// Top implements i.Leaderboard. n is clamped to the leaderboard capacity.
func (l *Leaderboard) Top(ctx context.Context, difficulty game.Difficulty, n int64) ([]i.Standing, error) {
	if n <= 0 || n > l.capacity {
		n = l.capacity
	}

	members, err := l.store.Lowest(ctx, l.key(difficulty), n)
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	standings := make([]i.Standing, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m.Member)
		if err != nil {
			continue
		}

		standing := i.Standing{Rank: len(standings) + 1, PlayerID: id, Ticks: int64(m.Score)}
		if l.users != nil {
			if u, err := l.users.ByID(id); err == nil {
				standing.Username = u.Username
				standing.DisplayName = u.Name()
			}
		}
		standings = append(standings, standing)
	}
	return standings, nil
}
