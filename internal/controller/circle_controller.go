package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CircleController struct {
	CircleService *service.CircleService
}

func NewCircleController(circleService *service.CircleService) *CircleController {
	return &CircleController{CircleService: circleService}
}

type CircleRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Color string `json:"color" binding:"max=64"`
}

// ListCircles godoc
// @Summary Own circles
// @Tags circles
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Circle}
// @Router /api/circles [get]
func (c *CircleController) ListCircles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	circles, err := c.CircleService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, circles)
}

// CreateCircle godoc
// @Summary Create a circle
// @Tags circles
// @Accept json
// @Produce json
// @Param body body CircleRequest true "circle"
// @Success 201 {object} util.Response{data=model.Circle}
// @Failure 400 {object} util.Response "invalid color"
// @Failure 409 {object} util.Response "name already used"
// @Router /api/circles [post]
func (c *CircleController) CreateCircle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CircleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	circle, err := c.CircleService.Create(claims.UserID, req.Name, req.Color)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, circle)
}

// GetCircle godoc
// @Summary One circle
// @Tags circles
// @Produce json
// @Param id path string true "circle id"
// @Success 200 {object} util.Response{data=model.Circle}
// @Failure 404 {object} util.Response
// @Router /api/circles/{id} [get]
func (c *CircleController) GetCircle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	circle, err := c.CircleService.Get(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, circle)
}

// UpdateCircle godoc
// @Summary Rename or recolor a circle
// @Tags circles
// @Accept json
// @Produce json
// @Param id path string true "circle id"
// @Param body body CircleRequest true "circle"
// @Success 200 {object} util.Response{data=model.Circle}
// @Router /api/circles/{id} [put]
func (c *CircleController) UpdateCircle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CircleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	circle, err := c.CircleService.Update(claims.UserID, ctx.Param("id"), req.Name, req.Color)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, circle)
}

// DeleteCircle godoc
// @Summary Delete a circle
// @Description Memberships and the posts' visibility rows for this circle go with it
// @Tags circles
// @Produce json
// @Param id path string true "circle id"
// @Success 200 {object} util.Response
// @Router /api/circles/{id} [delete]
func (c *CircleController) DeleteCircle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CircleService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMembers godoc
// @Summary Accounts in a circle
// @Tags circles
// @Produce json
// @Param id path string true "circle id"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/circles/{id}/members [get]
func (c *CircleController) ListMembers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	members, err := c.CircleService.Members(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, members)
}

type MemberRequest struct {
	ConnectionID string `json:"connection_id" binding:"required"`
}

// AddMember godoc
// @Summary Put a connection into the circle
// @Tags circles
// @Accept json
// @Produce json
// @Param id path string true "circle id"
// @Param body body MemberRequest true "connection"
// @Success 200 {object} util.Response
// @Router /api/circles/{id}/members [post]
func (c *CircleController) AddMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CircleService.AddMember(claims.UserID, ctx.Param("id"), req.ConnectionID); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveMember godoc
// @Summary Take a connection out of the circle
// @Tags circles
// @Produce json
// @Param id path string true "circle id"
// @Param connectionId path string true "connection id"
// @Success 200 {object} util.Response
// @Router /api/circles/{id}/members/{connectionId} [delete]
func (c *CircleController) RemoveMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CircleService.RemoveMember(claims.UserID, ctx.Param("id"), ctx.Param("connectionId")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
