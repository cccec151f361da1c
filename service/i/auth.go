package i

import (
	"time"

	"github.com/beka-birhanu/vinom-chase/identity"
)

// Grant is the outcome of a successful sign-in.
type Grant struct {
	Player    *identity.User
	Token     string
	ExpiresAt time.Time
}

// Authenticator registers players and signs them in.
type Authenticator interface {
	// Register creates a player. An empty displayName falls back to the username.
	Register(username, displayName, password string) (*identity.User, error)

	SignIn(username, password string) (*Grant, error)
}
