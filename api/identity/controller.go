// Package identity exposes player sign-up, login and the bearer token
// middleware.
package identity

import (
	"net/http"

	dmn "github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles player accounts over HTTP.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{authService: a}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.register)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers protected routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/auth/me", c.me)
}

func (c *IdentityServer) register(ctx *gin.Context) {
	var request RegisterRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := c.authService.Register(request.Username, request.DisplayName, request.Password)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, playerResponse(player.Claims()))
}

func (c *IdentityServer) login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := c.authService.SignIn(request.Username, request.Password)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &LoginResponse{
		Player:    playerResponse(grant.Player.Claims()),
		Token:     grant.Token,
		ExpiresAt: grant.ExpiresAt,
	})
}

// me echoes the player the bearer token names.
func (c *IdentityServer) me(ctx *gin.Context) {
	claims, err := PlayerClaims(ctx)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, playerResponse(claims))
}

func playerResponse(claims dmn.Claims) PlayerResponse {
	return PlayerResponse{
		PlayerID:    claims.PlayerID,
		Username:    claims.Username,
		DisplayName: claims.Name,
	}
}
