package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InvitationController struct {
	InvitationService *service.InvitationService
}

func NewInvitationController(invitationService *service.InvitationService) *InvitationController {
	return &InvitationController{InvitationService: invitationService}
}

type CreateInvitationRequest struct {
	Name      string   `json:"name" binding:"max=255"`
	Message   string   `json:"message"`
	IsOpen    bool     `json:"is_open"`
	CircleIDs []string `json:"circle_ids" binding:"required"`
}

// CreateInvitation godoc
// @Summary Issue an invitation
// @Description Open invitations are reusable and never expire; personal ones are single-use and time-limited
// @Tags invitations
// @Accept json
// @Produce json
// @Param body body CreateInvitationRequest true "invitation"
// @Success 201 {object} util.Response{data=model.Invitation}
// @Failure 400 {object} util.Response "empty or foreign circle set"
// @Failure 409 {object} util.Response "already at the connection limit"
// @Router /api/invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inv, err := c.InvitationService.Create(claims.UserID, service.CreateInvitationInput{
		Name:      req.Name,
		Message:   req.Message,
		IsOpen:    req.IsOpen,
		CircleIDs: req.CircleIDs,
	})
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, inv)
}

// ListInvitations godoc
// @Summary Own invitations
// @Tags invitations
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Invitation}
// @Router /api/invitations [get]
func (c *InvitationController) ListInvitations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	invs, err := c.InvitationService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, invs)
}

// GetInvitation godoc
// @Summary Look at an invitation
// @Description Readable by anyone holding the ID, so the invitee can inspect it before accepting
// @Tags invitations
// @Produce json
// @Param id path string true "invitation id"
// @Success 200 {object} util.Response{data=model.Invitation}
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response "expired"
// @Router /api/invitations/{id} [get]
func (c *InvitationController) GetInvitation(ctx *gin.Context) {
	inv, err := c.InvitationService.Get(ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, inv)
}

// RevokeInvitation godoc
// @Summary Revoke an invitation
// @Tags invitations
// @Produce json
// @Param id path string true "invitation id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/invitations/{id} [delete]
func (c *InvitationController) RevokeInvitation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.InvitationService.Revoke(claims.UserID, ctx.Param("id")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type AcceptInvitationRequest struct {
	CircleIDs []string `json:"circle_ids" binding:"required"`
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description Creates the connection; the inviter's side lands in the invitation's circles, the accepter's side in the circles given here
// @Tags invitations
// @Accept json
// @Produce json
// @Param id path string true "invitation id"
// @Param body body AcceptInvitationRequest true "accepter's circles"
// @Success 201 {object} util.Response{data=model.Connection}
// @Failure 400 {object} util.Response "empty or foreign circle set"
// @Failure 409 {object} util.Response "already connected or at the limit"
// @Failure 410 {object} util.Response "expired"
// @Router /api/invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AcceptInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conn, err := c.InvitationService.Accept(claims.UserID, ctx.Param("id"), req.CircleIDs)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, conn)
}
