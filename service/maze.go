package service

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/pathfinder"
	"github.com/beka-birhanu/vinom-chase/service/i"
)

// ErrMazeTooLarge is returned for sizes above the configured maximum.
var ErrMazeTooLarge = errors.New("maze is too large")

var _ i.MazeBuilder = &MazeService{}

// MazeService builds mazes within a size limit.
type MazeService struct {
	maxSize int
	options []maze.Option
}

// NewMazeService creates a MazeService. Extra carver options apply to every build.
func NewMazeService(maxSize int, options ...maze.Option) *MazeService {
	return &MazeService{maxSize: maxSize, options: options}
}

// Build implements i.MazeBuilder.
func (s *MazeService) Build(size int, seed *int64) (*maze.Grid, error) {
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrMazeTooLarge, size, s.maxSize)
	}

	opts := append([]maze.Option{}, s.options...)
	if seed != nil {
		opts = append(opts, maze.WithSeed(*seed))
	}
	return maze.New(size, opts...)
}

// Parse implements i.MazeBuilder. The size check runs before any row is read.
func (s *MazeService) Parse(rows []string) (*maze.Grid, error) {
	if len(rows) > s.maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrMazeTooLarge, len(rows), s.maxSize)
	}
	return maze.Parse(rows)
}

// Plan implements i.MazeBuilder.
func (s *MazeService) Plan(grid pathfinder.Grid, start, goal maze.Cell) pathfinder.Path {
	return pathfinder.Find(grid, start, goal)
}
