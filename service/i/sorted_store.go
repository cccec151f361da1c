package i

import "context"

// ScoredMember is one entry of a sorted set.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedStore keeps scored members ordered by ascending score.
type SortedStore interface {
	// KeepLowest stores member with score unless it already holds a lower one.
	KeepLowest(ctx context.Context, key string, score float64, member string) error

	// Lowest returns up to n members with the lowest scores, ascending.
	Lowest(ctx context.Context, key string, n int64) ([]ScoredMember, error)

	// Trim drops everything ranked past the first keep members.
	Trim(ctx context.Context, key string, keep int64) error
}
