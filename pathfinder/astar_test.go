package pathfinder

import (
	"testing"

	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bfsDistance is a brute-force reference for shortest path lengths.
func bfsDistance(g *maze.Grid, start, goal maze.Cell) int {
	if !g.IsOpen(start) || !g.IsOpen(goal) {
		return -1
	}
	dist := map[maze.Cell]int{start: 0}
	queue := []maze.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, n := range g.Neighbors4(cur) {
			if _, seen := dist[n]; g.IsOpen(n) && !seen {
				dist[n] = dist[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	return -1
}

// assertValidPath checks adjacency, openness and the endpoint of p.
func assertValidPath(t *testing.T, g *maze.Grid, start, goal maze.Cell, p Path) {
	t.Helper()
	require.NotEmpty(t, p)
	prev := start
	for _, c := range p {
		assert.True(t, g.IsOpen(c), "step %s is blocked", c)
		assert.Equal(t, 1, maze.Manhattan(prev, c), "step %s -> %s is not adjacent", prev, c)
		prev = c
	}
	assert.Equal(t, goal, p[len(p)-1])
	assert.NotContains(t, p, start)
}

func mustParse(t *testing.T, rows ...string) *maze.Grid {
	t.Helper()
	g, err := maze.Parse(rows)
	require.NoError(t, err)
	return g
}

func TestFindOpenGrid(t *testing.T) {
	g := mustParse(t, "...", "...", "...")
	start, goal := maze.Cell{Row: 0, Col: 0}, maze.Cell{Row: 2, Col: 2}

	p := Find(g, start, goal)
	assertValidPath(t, g, start, goal, p)

	// Equal f values expand the lowest (row, col) first, which walks the
	// top row before dropping down the last column.
	want := Path{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}
	assert.Equal(t, want, p)

	first, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, maze.Cell{Row: 0, Col: 1}, first)
}

func TestFindSameCell(t *testing.T) {
	g := mustParse(t, "..", "..")
	for _, c := range g.OpenCells() {
		p := Find(g, c, c)
		assert.True(t, p.Empty())
	}
}

func TestFindUnreachable(t *testing.T) {
	t.Run("goal walled in", func(t *testing.T) {
		g := mustParse(t,
			".....",
			"..#..",
			".#.#.",
			"..#..",
			".....",
		)
		p := Find(g, maze.Cell{Row: 0, Col: 0}, maze.Cell{Row: 2, Col: 2})
		assert.True(t, p.Empty())
	})

	t.Run("goal blocked", func(t *testing.T) {
		g := mustParse(t, "..", ".#")
		assert.Empty(t, Find(g, maze.Cell{}, maze.Cell{Row: 1, Col: 1}))
	})

	t.Run("ends out of bounds", func(t *testing.T) {
		g := mustParse(t, "..", "..")
		assert.Empty(t, Find(g, maze.Cell{Row: -1}, maze.Cell{Row: 1, Col: 1}))
		assert.Empty(t, Find(g, maze.Cell{}, maze.Cell{Row: 2, Col: 0}))
	})
}

func TestFindIsMinimal(t *testing.T) {
	fixtures := [][]string{
		{
			"....#",
			".##.#",
			".#...",
			".#.#.",
			"...#.",
		},
		{
			".#....",
			".#.##.",
			".#..#.",
			".##.#.",
			"....#.",
			"##....",
		},
		{
			"......",
			".####.",
			".#..#.",
			".#..#.",
			".##.#.",
			"......",
		},
	}

	for _, rows := range fixtures {
		g := mustParse(t, rows...)
		open := g.OpenCells()
		for _, start := range open {
			for _, goal := range open {
				if start == goal {
					continue
				}
				want := bfsDistance(g, start, goal)
				p := Find(g, start, goal)
				if want < 0 {
					assert.Empty(t, p)
					continue
				}
				assertValidPath(t, g, start, goal, p)
				assert.Len(t, p, want, "%s -> %s", start, goal)
			}
		}
	}
}

func TestFindOnCarvedMazes(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, err := maze.New(30, maze.WithSeed(seed))
		require.NoError(t, err)

		p := Find(g, g.Start(), g.Goal())
		assertValidPath(t, g, g.Start(), g.Goal(), p)
		assert.Len(t, p, bfsDistance(g, g.Start(), g.Goal()))
	}
}

func TestFindIsDeterministic(t *testing.T) {
	g := mustParse(t,
		"......",
		"......",
		"..##..",
		"......",
		"......",
		"......",
	)
	start, goal := maze.Cell{Row: 0, Col: 0}, maze.Cell{Row: 5, Col: 5}

	first := Find(g, start, goal)
	for i := 0; i < 25; i++ {
		assert.Equal(t, first, Find(g, start, goal))
	}
}
