// Package identity holds player accounts and the claims their access tokens
// carry.
package identity

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	minUsernameLength    = 3
	maxUsernameLength    = 20
	maxDisplayNameLength = 32 // In runes.
)

// Account validation errors.
var (
	ErrUsernameTooShort      = errors.New("username too short")
	ErrUsernameTooLong       = errors.New("username too long")
	ErrInvalidUsernameFormat = errors.New("username may only hold letters, digits and underscores")
	ErrInvalidDisplayName    = errors.New("display name must be 1 to 32 printable characters")
	ErrWeakPassword          = errors.New("weak password")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

	// hashCost is the bcrypt work factor for new passwords.
	hashCost = 12
)

// User is a registered player. ID is the playerId that sessions, results and
// leaderboard entries are keyed by.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`    // Normalized login name, unique.
	DisplayName  string    `bson:"displayName"` // Shown on the leaderboard.
	PasswordHash string    `bson:"passwordHash"`
	JoinedAt     time.Time `bson:"joinedAt"`
}

// Registration is a sign-up request.
type Registration struct {
	ID          uuid.UUID
	Username    string
	DisplayName string // Empty means the username as typed.
	Password    string
	JoinedAt    time.Time
}

// NewUser validates r and hashes its password.
func NewUser(r Registration) (*User, error) {
	username := NormalizeUsername(r.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(r.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(r.Username)
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}

	if zxcvbn.PasswordStrength(r.Password, []string{username, displayName}).Score < minPasswordStrengthScore {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), hashCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           r.ID,
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		JoinedAt:     r.JoinedAt.UTC(),
	}, nil
}

// NormalizeUsername folds a login name to the form it is stored under.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Name is what other players see.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Claims returns what an access token for u vouches for.
func (u *User) Claims() Claims {
	return Claims{PlayerID: u.ID, Username: u.Username, Name: u.Name()}
}

// Claims identify the player behind an authenticated request.
type Claims struct {
	PlayerID uuid.UUID
	Username string
	Name     string
}

func validateUsername(username string) error {
	switch {
	case len(username) < minUsernameLength:
		return ErrUsernameTooShort
	case len(username) > maxUsernameLength:
		return ErrUsernameTooLong
	case !usernameRegex.MatchString(username):
		return ErrInvalidUsernameFormat
	}
	return nil
}

func validateDisplayName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
		return ErrInvalidDisplayName
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return ErrInvalidDisplayName
		}
	}
	return nil
}
