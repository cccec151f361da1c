package gameapi

import (
	"net/http"

	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/gin-gonic/gin"
)

// MazeController builds mazes and plans routes on demand.
type MazeController struct {
	mazes i.MazeBuilder
}

// NewMazeController creates a MazeController.
func NewMazeController(mazes i.MazeBuilder) *MazeController {
	return &MazeController{mazes: mazes}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.build)
		mazes.POST("/paths", mc.plan)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

func (mc *MazeController) build(ctx *gin.Context) {
	var request MazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, err := mc.mazes.Build(request.Size, request.Seed)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	route := mc.mazes.Plan(grid, grid.Start(), grid.Goal())
	ctx.JSON(http.StatusCreated, &MazeResponse{
		Size:  grid.Size(),
		Rows:  grid.Rows(),
		Start: grid.Start(),
		Goal:  grid.Goal(),
		Route: nonNil(route),
	})
}

func (mc *MazeController) plan(ctx *gin.Context) {
	var request PathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, err := mc.mazes.Parse(request.Rows)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	route := mc.mazes.Plan(grid, request.Start, request.Goal)
	ctx.JSON(http.StatusOK, &PathResponse{
		Reachable: !route.Empty() || (request.Start == request.Goal && grid.IsOpen(request.Goal)),
		Length:    len(route),
		Route:     nonNil(route),
	})
}

// nonNil keeps empty routes encoded as [] rather than null.
func nonNil(cells []maze.Cell) []maze.Cell {
	if cells == nil {
		return []maze.Cell{}
	}
	return cells
}
