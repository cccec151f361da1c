package maze

import "math/rand"

// Frontier grows the open region from a random seed cell. Candidates are
// popped uniformly at random from the frontier and opened only when exactly
// one of their neighbours is already open, which keeps corridors one cell
// wide. Frontier entries are pushed unfiltered; out-of-bounds, duplicate and
// already open entries are discarded when popped.
func Frontier(g *Grid, rng *rand.Rand) {
	seed := Cell{Row: rng.Intn(g.size), Col: rng.Intn(g.size)}
	_ = g.SetOpen(seed)
	frontier := pushNeighbors(make([]Cell, 0, 4*g.size), seed)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		cell := frontier[i]
		last := len(frontier) - 1
		frontier[i] = frontier[last]
		frontier = frontier[:last]

		if !g.InBound(cell) || g.IsOpen(cell) {
			continue
		}

		if g.openNeighbors(cell) != 1 {
			continue
		}

		_ = g.SetOpen(cell)
		frontier = pushNeighbors(frontier, cell)
	}
}

// Backtracker carves a spanning tree over the even-coordinate lattice with a
// randomized depth-first walk. Every lattice cell ends up connected to (0,0);
// when the goal is off the lattice (even sizes) it is linked to the tree
// through one neighbour.
func Backtracker(g *Grid, rng *rand.Rand) {
	start := g.Start()
	_ = g.SetOpen(start)
	stack := []Cell{start}
	jumps := [4]Cell{{Row: 2}, {Row: -2}, {Col: 2}, {Col: -2}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([]Cell, 0, len(jumps))
		for _, d := range jumps {
			next := cur.Add(d)
			if g.InBound(next) && !g.IsOpen(next) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		_ = g.SetOpen(Cell{Row: cur.Row + d.Row/2, Col: cur.Col + d.Col/2})
		next := cur.Add(d)
		_ = g.SetOpen(next)
		stack = append(stack, next)
	}

	linkToOpen(g, g.Goal())
}

// linkToOpen opens the first neighbour of c that touches another open cell,
// unless c already has an open neighbour.
func linkToOpen(g *Grid, c Cell) {
	if g.openNeighbors(c) > 0 {
		return
	}

	for _, n := range g.Neighbors4(c) {
		for _, nn := range g.Neighbors4(n) {
			if nn != c && g.IsOpen(nn) {
				_ = g.SetOpen(n)
				return
			}
		}
	}
}

// openNeighbors counts the open in-bounds neighbours of c.
func (g *Grid) openNeighbors(c Cell) int {
	count := 0
	for _, n := range g.Neighbors4(c) {
		if g.IsOpen(n) {
			count++
		}
	}
	return count
}

func pushNeighbors(frontier []Cell, c Cell) []Cell {
	for _, d := range neighborOffsets {
		frontier = append(frontier, c.Add(d))
	}
	return frontier
}
