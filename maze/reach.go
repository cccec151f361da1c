package maze

import "github.com/zyedidia/generic/mapset"

// Reachable returns every open cell 4-connected to from, in breadth-first
// order. It returns nil when from is not open.
func Reachable(g *Grid, from Cell) []Cell {
	if !g.IsOpen(from) {
		return nil
	}

	visited := mapset.New[Cell]()
	visited.Put(from)
	queue := []Cell{from}
	var order []Cell

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, n := range g.Neighbors4(current) {
			if g.IsOpen(n) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	return order
}

// Connected reports whether a and b are both open and joined by open cells.
func Connected(g *Grid, a, b Cell) bool {
	if !g.IsOpen(a) || !g.IsOpen(b) {
		return false
	}
	if a == b {
		return true
	}

	for _, c := range Reachable(g, a) {
		if c == b {
			return true
		}
	}
	return false
}
