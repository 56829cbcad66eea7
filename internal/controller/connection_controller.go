package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ConnectionController struct {
	ConnectionService *service.ConnectionService
}

func NewConnectionController(connectionService *service.ConnectionService) *ConnectionController {
	return &ConnectionController{ConnectionService: connectionService}
}

// ListConnections godoc
// @Summary Own connections
// @Tags connections
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Connection}
// @Router /api/connections [get]
func (c *ConnectionController) ListConnections(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conns, err := c.ConnectionService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, conns)
}

// GetConnection godoc
// @Summary One connection
// @Tags connections
// @Produce json
// @Param id path string true "connection id"
// @Success 200 {object} util.Response{data=model.Connection}
// @Failure 404 {object} util.Response
// @Router /api/connections/{id} [get]
func (c *ConnectionController) GetConnection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conn, err := c.ConnectionService.Get(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, conn)
}

// DeleteConnection godoc
// @Summary Sever a connection
// @Description Removes both sides, their circle memberships, the conversation and the feed visibility rows
// @Tags connections
// @Produce json
// @Param id path string true "connection id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/connections/{id} [delete]
func (c *ConnectionController) DeleteConnection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ConnectionService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SetCirclesRequest struct {
	CircleIDs []string `json:"circle_ids"`
}

// SetCircles godoc
// @Summary Replace the circle set of a connection
// @Tags connections
// @Accept json
// @Produce json
// @Param id path string true "connection id"
// @Param body body SetCirclesRequest true "target circles"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "foreign circle"
// @Router /api/connections/{id}/circles [put]
func (c *ConnectionController) SetCircles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SetCirclesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ConnectionService.SetCircles(claims.UserID, ctx.Param("id"), req.CircleIDs); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
