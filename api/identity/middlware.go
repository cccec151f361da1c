package identity

import (
	"errors"
	"net/http"
	"strings"

	dmn "github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextPlayerClaims is the gin context key holding the verified dmn.Claims.
	ContextPlayerClaims = "playerClaims"

	// tokenQueryParam carries the token for websocket upgrades, where
	// browsers cannot set headers.
	tokenQueryParam = "access_token"
)

// ErrNoUserClaims is returned when a request passed no valid player claims.
var ErrNoUserClaims = errors.New("request carries no player claims")

// Authoriz rejects requests without a valid access token and stores the
// player it names under ContextPlayerClaims.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Verify(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextPlayerClaims, claims)
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// access_token query parameter.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(tokenQueryParam)
		return token, token != ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PlayerClaims returns the claims Authoriz stored for the request.
func PlayerClaims(c *gin.Context) (dmn.Claims, error) {
	value, ok := c.Get(ContextPlayerClaims)
	if !ok {
		return dmn.Claims{}, ErrNoUserClaims
	}

	claims, ok := value.(dmn.Claims)
	if !ok || claims.PlayerID == uuid.Nil {
		return dmn.Claims{}, ErrNoUserClaims
	}
	return claims, nil
}

// UserID returns the ID of the authenticated player.
func UserID(c *gin.Context) (uuid.UUID, error) {
	claims, err := PlayerClaims(c)
	return claims.PlayerID, err
}
