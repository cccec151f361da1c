/*
Package maze provides the square occupancy grid the chase game is played on
and the randomized carver that produces it.

A Grid is an N×N set of cells, each open or blocked. The carver starts from a
fully blocked grid and grows a single connected region of open cells with a
randomized frontier. It guarantees that the start cell (0,0) and the goal cell
(N-1,N-1) are open and connected, retrying or falling back to a direct
corridor when a carve leaves them apart.

A Grid is written once by the carver and is read-only afterwards, so any
number of searches may read it concurrently.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// CellState is the occupancy of a single cell.
type CellState uint8

const (
	Blocked CellState = iota // Wall, not traversable
	Open                     // Passage, traversable
)

const (
	blockedRune = '#'
	openRune    = '.'
)

var (
	ErrInvalidSize  = errors.New("maze size must be positive")
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrInvalidRows  = errors.New("rows do not describe a square grid")
	ErrInvalidGlyph = errors.New("unknown cell glyph")
)

// Grid is an N×N occupancy map. Every access is bounds-checked.
type Grid struct {
	size  int
	cells []CellState
}

// NewGrid returns a size×size grid with every cell blocked.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	return &Grid{
		size:  size,
		cells: make([]CellState, size*size),
	}, nil
}

// Parse builds a grid from text rows where '#' is blocked and '.' is open.
func Parse(rows []string) (*Grid, error) {
	g, err := NewGrid(len(rows))
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		if len(row) != g.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidRows, r, len(row), g.size)
		}
		for c, glyph := range row {
			switch glyph {
			case openRune:
				g.cells[r*g.size+c] = Open
			case blockedRune:
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidGlyph, glyph, r, c)
			}
		}
	}

	return g, nil
}

// Size returns the side length N.
func (g *Grid) Size() int {
	return g.size
}

// Start returns the game start cell (0,0).
func (g *Grid) Start() Cell {
	return Cell{Row: 0, Col: 0}
}

// Goal returns the game goal cell (N-1,N-1).
func (g *Grid) Goal() Cell {
	return Cell{Row: g.size - 1, Col: g.size - 1}
}

// InBound reports whether c lies inside the grid.
func (g *Grid) InBound(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// IsOpen reports whether c is in bounds and open. It never fails.
func (g *Grid) IsOpen(c Cell) bool {
	return g.InBound(c) && g.cells[c.Row*g.size+c.Col] == Open
}

// SetOpen marks c open. Only the carver should call it.
func (g *Grid) SetOpen(c Cell) error {
	if !g.InBound(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	g.cells[c.Row*g.size+c.Col] = Open
	return nil
}

// Neighbors4 returns the in-bounds orthogonal neighbours of c in the fixed
// order +row, -row, +col, -col.
func (g *Grid) Neighbors4(c Cell) []Cell {
	result := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := c.Add(d)
		if g.InBound(n) {
			result = append(result, n)
		}
	}
	return result
}

// OpenCells returns every open cell in (row, col) order.
func (g *Grid) OpenCells() []Cell {
	var result []Cell
	for i, s := range g.cells {
		if s == Open {
			result = append(result, Cell{Row: i / g.size, Col: i % g.size})
		}
	}
	return result
}

// Rows renders the grid as text rows, '#' for blocked and '.' for open.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		b.Reset()
		for c := 0; c < g.size; c++ {
			if g.cells[r*g.size+c] == Open {
				b.WriteByte(openRune)
			} else {
				b.WriteByte(blockedRune)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}

// reset blocks every cell again.
func (g *Grid) reset() {
	for i := range g.cells {
		g.cells[i] = Blocked
	}
}
