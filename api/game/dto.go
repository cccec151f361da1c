// Package gameapi exposes mazes, chase sessions and rankings over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/google/uuid"
)

// MazeRequest asks for a freshly carved maze.
type MazeRequest struct {
	Size int    `json:"size" binding:"required,min=1"`
	Seed *int64 `json:"seed"`
}

// MazeResponse is a carved maze and its start to goal route.
type MazeResponse struct {
	Size  int         `json:"size"`
	Rows  []string    `json:"rows"`
	Start maze.Cell   `json:"start"`
	Goal  maze.Cell   `json:"goal"`
	Route []maze.Cell `json:"route"`
}

// PathRequest asks for a route through a caller supplied maze.
type PathRequest struct {
	Rows  []string  `json:"rows" binding:"required"`
	Start maze.Cell `json:"start"`
	Goal  maze.Cell `json:"goal"`
}

// PathResponse is the planned route. An empty route means unreachable.
type PathResponse struct {
	Reachable bool        `json:"reachable"`
	Length    int         `json:"length"`
	Route     []maze.Cell `json:"route"`
}

// NewGameRequest starts a chase session.
type NewGameRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Mode       string `json:"mode"`
}

// NewGameResponse identifies a started session.
type NewGameResponse struct {
	ID uuid.UUID `json:"id"`
}

// GameResponse is a session's maze and live state.
type GameResponse struct {
	ID         uuid.UUID       `json:"id"`
	Difficulty game.Difficulty `json:"difficulty"`
	Mode       game.Mode       `json:"mode"`
	Rows       []string        `json:"rows"`
	State      game.State      `json:"state"`
}

// MoveRequest steps the player of a manual session.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// StandingResponse is one leaderboard row.
type StandingResponse struct {
	Rank        int       `json:"rank"`
	PlayerID    uuid.UUID `json:"playerId"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	Ticks       int64     `json:"ticks"`
}
