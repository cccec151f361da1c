package i

import (
	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/identity"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*identity.User, error)
}

// ResultRepo stores finished games.
type ResultRepo interface {
	Save(result *game.Result) error

	// ByPlayer returns the player's latest results, newest first.
	ByPlayer(playerID uuid.UUID, limit int64) ([]game.Result, error)
}
