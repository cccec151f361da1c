package game

import "github.com/beka-birhanu/vinom-chase/maze"

// Status is the lifecycle stage of a game.
type Status string

const (
	StatusRunning Status = "running"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusStopped Status = "stopped"
)

// Ended reports whether s is a terminal status. The zero value is not.
func (s Status) Ended() bool {
	switch s {
	case StatusWon, StatusLost, StatusStopped:
		return true
	}
	return false
}

// State is a point-in-time copy of a game.
type State struct {
	Version int64       `json:"version"`
	Tick    int64       `json:"tick"`
	Size    int         `json:"size"`
	Player  maze.Cell   `json:"player"`
	Goal    maze.Cell   `json:"goal"`
	Enemies []maze.Cell `json:"enemies"`
	Hits    int         `json:"hits"`
	Status  Status      `json:"status"`
}

// Encoder serializes game state for the wire.
type Encoder interface {
	MarshalState(State) ([]byte, error)
	UnmarshalState([]byte) (State, error)
}
