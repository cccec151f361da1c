package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-chase/api/identity"
	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/beka-birhanu/vinom-chase/socket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChaseController starts, drives and streams chase sessions.
type ChaseController struct {
	sessions i.GameSessionManager
	hub      i.StreamHub
}

// NewChaseController creates a ChaseController.
func NewChaseController(sessions i.GameSessionManager, hub i.StreamHub) *ChaseController {
	return &ChaseController{sessions: sessions, hub: hub}
}

// RegisterPublic registers public routes.
func (cc *ChaseController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (cc *ChaseController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", cc.create)
		games.GET("/:ID", cc.get)
		games.POST("/:ID/moves", cc.move)
		games.DELETE("/:ID", cc.stop)
		games.GET("/:ID/stream", cc.stream)
	}
}

func (cc *ChaseController) create(ctx *gin.Context) {
	playerID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var request NewGameRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty, err := game.ParseDifficulty(request.Difficulty)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	mode := game.ModeManual
	if request.Mode != "" {
		if mode, err = game.ParseMode(request.Mode); err != nil {
			abortWithError(ctx, err)
			return
		}
	}

	id, err := cc.sessions.NewSession(playerID, difficulty, mode)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &NewGameResponse{ID: id})
}

func (cc *ChaseController) get(ctx *gin.Context) {
	playerID, sessionID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	view, err := cc.sessions.Session(sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &GameResponse{
		ID:         view.ID,
		Difficulty: view.Difficulty,
		Mode:       view.Mode,
		Rows:       view.Rows,
		State:      view.State,
	})
}

func (cc *ChaseController) move(ctx *gin.Context) {
	playerID, sessionID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := cc.sessions.Move(sessionID, playerID, request.Direction)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (cc *ChaseController) stop(ctx *gin.Context) {
	playerID, sessionID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	if err := cc.sessions.Stop(sessionID, playerID); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusAccepted)
}

// stream upgrades to a websocket that receives the session's frames.
func (cc *ChaseController) stream(ctx *gin.Context) {
	playerID, sessionID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	if _, err := cc.sessions.Session(sessionID, playerID); err != nil {
		abortWithError(ctx, err)
		return
	}

	// Other failures were already answered by the upgrader.
	if err := cc.hub.ServeRoom(ctx.Writer, ctx.Request, sessionID); errors.Is(err, socket.ErrRoomClosed) {
		abortWithError(ctx, err)
	}
}

func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	playerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return playerID, true
}

func sessionParams(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, ok := currentUser(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}
