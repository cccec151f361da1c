package i

import (
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/pathfinder"
)

// MazeBuilder carves mazes and plans routes through them.
type MazeBuilder interface {
	// Build carves a size×size maze. A nil seed draws a fresh one.
	Build(size int, seed *int64) (*maze.Grid, error)

	// Parse reads a caller supplied maze, within the same size limit as Build.
	Parse(rows []string) (*maze.Grid, error)
	Plan(grid pathfinder.Grid, start, goal maze.Cell) pathfinder.Path
}
