package service

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-chase/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPassword = "Maze-Runner_Escapes#2049!"

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService(nil, &fakeTokenizer{})
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewAuthService(newFakeUserRepo(), nil)
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestAuth(t *testing.T) {
	users := newFakeUserRepo()
	tokens := &fakeTokenizer{}
	auth, err := NewAuthService(users, tokens)
	require.NoError(t, err)

	now := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	auth.now = func() time.Time { return now }

	t.Run("register", func(t *testing.T) {
		player, err := auth.Register("Maze_Runner", "", goodPassword)
		require.NoError(t, err)
		assert.Equal(t, "maze_runner", player.Username)
		assert.Equal(t, "Maze_Runner", player.DisplayName)
		assert.Equal(t, now, player.JoinedAt)

		stored, err := users.ByID(player.ID)
		require.NoError(t, err)
		assert.Same(t, player, stored)

		_, err = auth.Register("maze_runner", "Copycat", goodPassword)
		assert.ErrorIs(t, err, ErrUsernameTaken, "names differing only in case collide")

		_, err = auth.Register("other_runner", "", "12345")
		assert.ErrorIs(t, err, identity.ErrWeakPassword)
		_, err = auth.Register("x", "", goodPassword)
		assert.ErrorIs(t, err, identity.ErrUsernameTooShort)
	})

	t.Run("sign in", func(t *testing.T) {
		grant, err := auth.SignIn(" MAZE_RUNNER ", goodPassword)
		require.NoError(t, err)
		assert.Equal(t, "maze_runner", grant.Player.Username)
		assert.Equal(t, "token-for-maze_runner", grant.Token)
		assert.Equal(t, now.Add(24*time.Hour), grant.ExpiresAt)

		assert.Equal(t, grant.Player.Claims(), tokens.lastClaims)
		assert.Equal(t, "Maze_Runner", tokens.lastClaims.Name)
		assert.Equal(t, 24*time.Hour, tokens.lastTTL)
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		_, err := auth.SignIn("maze_runner", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = auth.SignIn("nobody", goodPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
