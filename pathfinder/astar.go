// Package pathfinder computes shortest routes over a maze grid with A*.
package pathfinder

import (
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/zyedidia/generic/heap"
)

// Grid is the read-only view of a maze the search needs.
type Grid interface {
	InBound(maze.Cell) bool
	IsOpen(maze.Cell) bool
	Neighbors4(maze.Cell) []maze.Cell
}

// Path is the ordered list of cells from (excluding) the origin to
// (including) the destination. An empty Path means no route exists.
type Path []maze.Cell

// Empty reports whether the path has no steps.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Next returns the first step of the path.
func (p Path) Next() (maze.Cell, bool) {
	if len(p) == 0 {
		return maze.Cell{}, false
	}
	return p[0], true
}

// item is a frontier entry. Entries are ordered by f, then by cell.
type item struct {
	cell maze.Cell
	g    int
	f    int
}

func less(a, b item) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.cell.Less(b.cell)
}

// Find returns the shortest path from start to goal over 4-adjacent open
// cells. Every step costs 1 and the Manhattan distance guides the search.
// Equal-priority entries are expanded in cell order, so identical inputs
// always produce the identical path.
//
// Find never fails: it returns an empty Path when start equals goal, when
// either end lies outside the grid, when goal is blocked, or when no route
// exists.
func Find(grid Grid, start, goal maze.Cell) Path {
	if start == goal || !grid.InBound(start) || !grid.IsOpen(goal) {
		return nil
	}

	gScore := map[maze.Cell]int{start: 0}
	cameFrom := make(map[maze.Cell]maze.Cell)

	open := heap.New[item](less)
	open.Push(item{cell: start, g: 0, f: maze.Manhattan(start, goal)})

	for open.Size() > 0 {
		current, _ := open.Pop()
		if current.g > gScore[current.cell] {
			continue // superseded by a cheaper entry
		}

		if current.cell == goal {
			return reconstruct(cameFrom, start, goal)
		}

		for _, n := range grid.Neighbors4(current.cell) {
			if !grid.IsOpen(n) {
				continue
			}

			tentative := current.g + 1
			if best, seen := gScore[n]; seen && tentative >= best {
				continue
			}

			gScore[n] = tentative
			cameFrom[n] = current.cell
			open.Push(item{cell: n, g: tentative, f: tentative + maze.Manhattan(n, goal)})
		}
	}

	return nil
}

// reconstruct walks predecessor links back from goal and reverses them.
func reconstruct(cameFrom map[maze.Cell]maze.Cell, start, goal maze.Cell) Path {
	var path Path
	for cur := goal; cur != start; cur = cameFrom[cur] {
		path = append(path, cur)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
