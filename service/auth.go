package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNilDependency      = errors.New("missing dependency")
)

var _ i.Authenticator = &Auth{}

// Auth registers players and trades their credentials for access tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	now       func() time.Time
}

// NewAuthService wires the user repository and tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, ErrNilDependency
	}
	return &Auth{userRepo: userRepo, tokenizer: tokenizer, now: time.Now}, nil
}

// Register implements i.Authenticator. Usernames are unique after
// normalization, so "Runner" and "runner" are the same player.
func (a *Auth) Register(username, displayName, password string) (*identity.User, error) {
	if _, err := a.userRepo.ByUsername(identity.NormalizeUsername(username)); err == nil {
		return nil, ErrUsernameTaken
	}

	user, err := identity.NewUser(identity.Registration{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		JoinedAt:    a.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := a.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("saving player: %w", err)
	}
	return user, nil
}

// SignIn implements i.Authenticator.
func (a *Auth) SignIn(username, password string) (*i.Grant, error) {
	user, err := a.userRepo.ByUsername(identity.NormalizeUsername(username))
	if err != nil || !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	issuedAt := a.now()
	token, err := a.tokenizer.Issue(user.Claims(), tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &i.Grant{Player: user, Token: token, ExpiresAt: issuedAt.Add(tokenTTL).UTC()}, nil
}
