package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noCarve leaves the grid fully blocked so that only start and goal are open.
func noCarve(*Grid, *rand.Rand) {}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		g, err := New(size, WithSeed(1))
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestNewSingleCell(t *testing.T) {
	g, err := New(1, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, g.Start(), g.Goal())
	assert.True(t, g.IsOpen(Cell{Row: 0, Col: 0}))
}

func TestNewConnectsStartAndGoal(t *testing.T) {
	strategies := map[string]Strategy{
		"frontier":    Frontier,
		"backtracker": Backtracker,
	}

	for name, strategy := range strategies {
		t.Run(name, func(t *testing.T) {
			for size := 2; size <= 24; size++ {
				for seed := int64(0); seed < 10; seed++ {
					g, err := New(size, WithSeed(seed), WithStrategy(strategy))
					require.NoError(t, err)
					require.Equal(t, size, g.Size())
					assert.True(t, Connected(g, g.Start(), g.Goal()), "size=%d seed=%d", size, seed)
				}
			}
		})
	}
}

func TestNewWithoutFallbackFailsLoudly(t *testing.T) {
	g, err := New(5, WithSeed(7), WithStrategy(noCarve), WithMaxAttempts(3), WithoutCorridorFallback())
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrMazeGenerationFailed)
}

func TestNewCorridorFallback(t *testing.T) {
	g, err := New(5, WithSeed(7), WithStrategy(noCarve), WithMaxAttempts(2))
	require.NoError(t, err)

	assert.True(t, Connected(g, g.Start(), g.Goal()))
	// Column 0 down, then the last row across.
	assert.Equal(t, []string{
		".####",
		".####",
		".####",
		".####",
		".....",
	}, g.Rows())
}

func TestNewIsReproducible(t *testing.T) {
	a, err := New(15, WithSeed(99))
	require.NoError(t, err)
	b, err := New(15, WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, a.Rows(), b.Rows())
}

func TestFrontierSingleConnectionRule(t *testing.T) {
	g, err := NewGrid(12)
	require.NoError(t, err)
	Frontier(g, rand.New(rand.NewSource(3)))

	// The single connection rule never opens a full 2x2 block.
	for r := 0; r+1 < g.Size(); r++ {
		for c := 0; c+1 < g.Size(); c++ {
			block := g.IsOpen(Cell{r, c}) && g.IsOpen(Cell{r + 1, c}) &&
				g.IsOpen(Cell{r, c + 1}) && g.IsOpen(Cell{r + 1, c + 1})
			assert.False(t, block, "open 2x2 block at (%d,%d)", r, c)
		}
	}

	// Everything the frontier opens is one connected region.
	open := g.OpenCells()
	require.NotEmpty(t, open)
	assert.Len(t, Reachable(g, open[0]), len(open))
}

func TestBacktrackerLinksEvenGoal(t *testing.T) {
	g, err := NewGrid(6)
	require.NoError(t, err)
	Backtracker(g, rand.New(rand.NewSource(11)))
	_ = g.SetOpen(g.Goal())

	assert.True(t, Connected(g, g.Start(), g.Goal()))
}
