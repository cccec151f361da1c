package service

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMazeService(t *testing.T) {
	svc := NewMazeService(30)

	t.Run("rejects oversized mazes", func(t *testing.T) {
		g, err := svc.Build(31, nil)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrMazeTooLarge)
	})

	t.Run("rejects oversized parsed mazes", func(t *testing.T) {
		rows := make([]string, 31)
		for r := range rows {
			rows[r] = strings.Repeat(".", 31)
		}
		g, err := svc.Parse(rows)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrMazeTooLarge)

		g, err = svc.Parse(rows[:30])
		assert.Nil(t, g)
		assert.ErrorIs(t, err, maze.ErrInvalidRows)

		g, err = svc.Parse([]string{"..", ".#"})
		require.NoError(t, err)
		assert.Equal(t, 2, g.Size())
	})

	t.Run("passes invalid sizes to the carver", func(t *testing.T) {
		_, err := svc.Build(0, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidSize)
	})

	t.Run("seeded builds repeat", func(t *testing.T) {
		seed := int64(17)
		a, err := svc.Build(25, &seed)
		require.NoError(t, err)
		b, err := svc.Build(25, &seed)
		require.NoError(t, err)
		assert.Equal(t, a.Rows(), b.Rows())

		path := svc.Plan(a, a.Start(), a.Goal())
		require.False(t, path.Empty())
		assert.Equal(t, a.Goal(), path[len(path)-1])
	})

	t.Run("applies carver options", func(t *testing.T) {
		seed := int64(3)
		g, err := NewMazeService(30, maze.WithStrategy(maze.Backtracker)).Build(12, &seed)
		require.NoError(t, err)
		assert.True(t, maze.Connected(g, g.Start(), g.Goal()))
	})
}
