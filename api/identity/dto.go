package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest signs up a new player.
type RegisterRequest struct {
	Username    string `json:"username" form:"username" binding:"required"`
	DisplayName string `json:"displayName" form:"displayName"`
	Password    string `json:"password" form:"password" binding:"required"`
}

// LoginRequest trades credentials for an access token.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// PlayerResponse describes a player. PlayerID is the key of their results
// and leaderboard entries.
type PlayerResponse struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
}

// LoginResponse is a signed access token and the player it belongs to.
type LoginResponse struct {
	Player    PlayerResponse `json:"player"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}
