package maze

import "fmt"

// Cell is a grid coordinate. Cells are compared by value and ordered
// lexicographically by (Row, Col).
type Cell struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Directions maps a move name to the row/column delta it applies.
var Directions = map[string]Cell{
	"North": {Row: -1, Col: 0},
	"South": {Row: 1, Col: 0},
	"East":  {Row: 0, Col: 1},
	"West":  {Row: 0, Col: -1},
}

// neighborOffsets is the fixed expansion order: +row, -row, +col, -col.
var neighborOffsets = [4]Cell{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Less reports whether c sorts before o.
func (c Cell) Less(o Cell) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// String returns the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns |Δrow| + |Δcol| between a and b.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
