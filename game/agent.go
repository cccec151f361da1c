package game

import (
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/pathfinder"
)

// Agent is a grid position that chases a target one step at a time.
type Agent struct {
	pos maze.Cell
}

// NewAgent places an agent on the given cell.
func NewAgent(initial maze.Cell) *Agent {
	return &Agent{pos: initial}
}

// Position returns the cell the agent currently occupies.
func (a *Agent) Position() maze.Cell {
	return a.pos
}

// AdvanceToward plans a fresh route to target and takes its first step.
// The agent stays put when it already stands on target or no route exists.
// It reports whether the agent moved.
func (a *Agent) AdvanceToward(grid pathfinder.Grid, target maze.Cell) bool {
	next, ok := pathfinder.Find(grid, a.pos, target).Next()
	if !ok {
		return false
	}
	a.pos = next
	return true
}
