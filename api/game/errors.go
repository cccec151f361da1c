package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/service"
	"github.com/beka-birhanu/vinom-chase/socket"
	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{maze.ErrInvalidSize, http.StatusBadRequest},
	{maze.ErrInvalidRows, http.StatusBadRequest},
	{maze.ErrInvalidGlyph, http.StatusBadRequest},
	{service.ErrMazeTooLarge, http.StatusBadRequest},
	{game.ErrInvalidDifficulty, http.StatusBadRequest},
	{game.ErrInvalidMode, http.StatusBadRequest},
	{game.ErrInvalidDirection, http.StatusBadRequest},
	{service.ErrNotSessionOwner, http.StatusForbidden},
	{service.ErrSessionNotFound, http.StatusNotFound},
	{service.ErrPlayerInSession, http.StatusConflict},
	{game.ErrBlockedMove, http.StatusConflict},
	{game.ErrNotManualMode, http.StatusConflict},
	{game.ErrGameOver, http.StatusConflict},
	{maze.ErrMazeGenerationFailed, http.StatusUnprocessableEntity},
	{game.ErrNoRoute, http.StatusUnprocessableEntity},
	{service.ErrSpawnUnavailable, http.StatusUnprocessableEntity},
	{socket.ErrRoomClosed, http.StatusGone},
	{service.ErrManagerShutdown, http.StatusServiceUnavailable},
}

// abortWithError writes the status that matches err.
func abortWithError(ctx *gin.Context, err error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			ctx.AbortWithStatusJSON(es.status, gin.H{"error": err.Error()})
			return
		}
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
