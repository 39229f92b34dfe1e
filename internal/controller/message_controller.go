package controller

import (
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	Messages *service.MessageService
}

func NewMessageController(messages *service.MessageService) *MessageController {
	return &MessageController{Messages: messages}
}

// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SendMessageRequest true "Message"
// @Success 201 {object} util.Response
// @Router /api/messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.Messages.Send(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrRecipientNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, msg)
}

// @Summary Conversation with another user
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "Other user ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/messages/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	otherID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	messages, total, err := c.Messages.Conversation(ctx.Request.Context(), claims.UserID, uint(otherID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  messages,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Conversation inbox
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/messages [get]
func (c *MessageController) Conversations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conversations, err := c.Messages.Conversations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, conversations)
}

// @Summary Unread message count
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/messages/unread [get]
func (c *MessageController) Unread(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	count, err := c.Messages.UnreadCount(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"unread": count})
}
