package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IntroController struct {
	IntroService *service.IntroService
}

func NewIntroController(introService *service.IntroService) *IntroController {
	return &IntroController{IntroService: introService}
}

type CreateIntroRequest struct {
	ReceiverID   string `json:"receiver_id" binding:"required"`
	IntroducedID string `json:"introduced_id" binding:"required"`
}

// CreateIntro godoc
// @Summary Introduce two accounts to each other
// @Description Each side gets a pending intro naming the other; both must accept before they connect
// @Tags intros
// @Accept json
// @Produce json
// @Param body body CreateIntroRequest true "the two accounts"
// @Success 201 {object} util.Response{data=model.Intro}
// @Failure 400 {object} util.Response "introducing an account to itself"
// @Router /api/intros [post]
func (c *IntroController) CreateIntro(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateIntroRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	intro, err := c.IntroService.Create(claims.UserID, req.ReceiverID, req.IntroducedID)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, intro)
}

// ListOpenIntros godoc
// @Summary Pending intros addressed to the caller
// @Tags intros
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Intro}
// @Router /api/intros [get]
func (c *IntroController) ListOpenIntros(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	intros, err := c.IntroService.ListOpen(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, intros)
}

// AcceptIntro godoc
// @Summary Accept an intro
// @Description When the other side has accepted too this creates the connection
// @Tags intros
// @Produce json
// @Param id path string true "intro id"
// @Success 200 {object} util.Response{data=model.Intro}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "already connected or at the limit"
// @Router /api/intros/{id}/accept [post]
func (c *IntroController) AcceptIntro(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	intro, err := c.IntroService.Accept(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, intro)
}
