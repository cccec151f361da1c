package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts = 8
)

var (
	ErrMazeGenerationFailed = errors.New("maze generation failed to connect start and goal")
)

// Strategy carves open cells into a fully blocked grid using rng.
type Strategy func(g *Grid, rng *rand.Rand)

// Option configures New.
type Option func(*carver)

type carver struct {
	seed        int64    // Random seed, time-based unless seeded is set.
	seeded      bool     // Whether WithSeed was supplied.
	maxAttempts int      // Carve attempts before falling back or failing.
	corridor    bool     // Carve a direct start-goal corridor once attempts run out.
	strategy    Strategy // Carving algorithm.
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(c *carver) {
		c.seed = seed
		c.seeded = true
	}
}

// WithMaxAttempts bounds how many times carving is retried. Values below 1
// are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *carver) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithoutCorridorFallback makes New fail with ErrMazeGenerationFailed instead
// of carving a direct corridor when every attempt leaves start and goal apart.
func WithoutCorridorFallback() Option {
	return func(c *carver) {
		c.corridor = false
	}
}

// WithStrategy replaces the default Frontier carving algorithm.
func WithStrategy(s Strategy) Option {
	return func(c *carver) {
		if s != nil {
			c.strategy = s
		}
	}
}

// New carves a size×size maze. The returned grid always has Start and Goal
// open and connected; when that cannot be achieved New returns
// ErrMazeGenerationFailed and no grid.
func New(size int, options ...Option) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &carver{
		maxAttempts: defaultMaxAttempts,
		corridor:    true,
		strategy:    Frontier,
	}
	for _, opt := range options {
		opt(c)
	}

	if !c.seeded {
		c.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(c.seed))

	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	start, goal := g.Start(), g.Goal()

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		g.reset()
		c.strategy(g, rng)
		_ = g.SetOpen(start)
		_ = g.SetOpen(goal)

		if Connected(g, start, goal) {
			return g, nil
		}
	}

	if c.corridor {
		carveCorridor(g, start, goal)
		if Connected(g, start, goal) {
			return g, nil
		}
	}

	return nil, fmt.Errorf("%w: %d attempts on a %dx%d grid", ErrMazeGenerationFailed, c.maxAttempts, size, size)
}

// carveCorridor opens a straight row-then-column corridor from 'from' to 'to'.
func carveCorridor(g *Grid, from, to Cell) {
	cur := from
	_ = g.SetOpen(cur)
	for cur != to {
		switch {
		case cur.Row < to.Row:
			cur.Row++
		case cur.Row > to.Row:
			cur.Row--
		case cur.Col < to.Col:
			cur.Col++
		default:
			cur.Col--
		}
		_ = g.SetOpen(cur)
	}
}
