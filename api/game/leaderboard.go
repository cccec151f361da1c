package gameapi

import (
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultLeaderboardLimit = 10
	defaultResultsLimit     = 20
	maxResultsLimit         = 100
)

// RankingController serves the leaderboard and a player's own results.
type RankingController struct {
	leaderboard i.Leaderboard
	results     i.ResultRepo
}

// NewRankingController creates a RankingController.
func NewRankingController(leaderboard i.Leaderboard, results i.ResultRepo) *RankingController {
	return &RankingController{leaderboard: leaderboard, results: results}
}

// RegisterPublic registers public routes.
func (rc *RankingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:difficulty", rc.top)
}

// RegisterProtected registers protected routes.
func (rc *RankingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/results", rc.mine)
}

func (rc *RankingController) top(ctx *gin.Context) {
	difficulty, err := game.ParseDifficulty(ctx.Param("difficulty"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	limit, ok := queryLimit(ctx, defaultLeaderboardLimit)
	if !ok {
		return
	}

	standings, err := rc.leaderboard.Top(ctx.Request.Context(), difficulty, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := make([]StandingResponse, 0, len(standings))
	for _, s := range standings {
		response = append(response, StandingResponse{
			Rank:        s.Rank,
			PlayerID:    s.PlayerID,
			Username:    s.Username,
			DisplayName: s.DisplayName,
			Ticks:       s.Ticks,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

func (rc *RankingController) mine(ctx *gin.Context) {
	playerID, ok := currentUser(ctx)
	if !ok {
		return
	}

	limit, ok := queryLimit(ctx, defaultResultsLimit)
	if !ok {
		return
	}
	if limit > maxResultsLimit {
		limit = maxResultsLimit
	}

	results, err := rc.results.ByPlayer(playerID, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if results == nil {
		results = []game.Result{}
	}
	ctx.JSON(http.StatusOK, results)
}

func queryLimit(ctx *gin.Context, fallback int64) (int64, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return fallback, true
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
