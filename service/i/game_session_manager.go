package i

import (
	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/google/uuid"
)

// SessionView is what a player sees of their session.
type SessionView struct {
	ID         uuid.UUID
	Difficulty game.Difficulty
	Mode       game.Mode
	Rows       []string
	State      game.State
}

// GameSessionManager runs chase sessions on behalf of players.
type GameSessionManager interface {
	// NewSession builds a maze for difficulty and starts a game in it.
	NewSession(playerID uuid.UUID, difficulty game.Difficulty, mode game.Mode) (uuid.UUID, error)

	// Session returns the live view of a session owned by playerID.
	Session(sessionID, playerID uuid.UUID) (*SessionView, error)

	// Move steps the player of a manual session.
	Move(sessionID, playerID uuid.UUID, direction string) (game.State, error)

	// Stop ends a session early.
	Stop(sessionID, playerID uuid.UUID) error

	// StopAll ends every session and waits for their results to be stored.
	StopAll()
}
