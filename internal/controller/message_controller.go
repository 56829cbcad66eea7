package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

type SendMessageRequest struct {
	OtherUserID string `json:"other_user_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

// SendMessage godoc
// @Summary Send a direct message
// @Description Messages only travel between connected accounts
// @Tags messages
// @Accept json
// @Produce json
// @Param body body SendMessageRequest true "message"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 400 {object} util.Response "not connected"
// @Router /api/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.MessageService.Send(claims.UserID, req.OtherUserID, req.Text)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

type SendOnConnectionRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendOnConnection godoc
// @Summary Send a message over one of the caller's connections
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "connection id"
// @Param body body SendOnConnectionRequest true "message"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 404 {object} util.Response
// @Router /api/connections/{id}/messages [post]
func (c *MessageController) SendOnConnection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendOnConnectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.MessageService.SendOn(claims.UserID, ctx.Param("id"), req.Text)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

// ListConvos godoc
// @Summary Conversation overview
// @Description Every connection with its unread count and latest message
// @Tags messages
// @Produce json
// @Success 200 {object} util.Response{data=[]service.Convo}
// @Router /api/convos [get]
func (c *MessageController) ListConvos(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	convos, err := c.MessageService.Convos(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, convos)
}

// GetConversation godoc
// @Summary Full two-way history over a connection
// @Tags messages
// @Produce json
// @Param id path string true "connection id"
// @Success 200 {object} util.Response{data=[]model.Message}
// @Failure 404 {object} util.Response
// @Router /api/convos/{id} [get]
func (c *MessageController) GetConversation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	msgs, err := c.MessageService.Conversation(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// MarkConversationRead godoc
// @Summary Mark the incoming half of a conversation read
// @Tags messages
// @Produce json
// @Param id path string true "connection id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/convos/{id}/read [post]
func (c *MessageController) MarkConversationRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.MessageService.MarkRead(claims.UserID, ctx.Param("id")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
