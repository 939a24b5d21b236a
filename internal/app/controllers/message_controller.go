package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/services"
	"github.com/emre/tutorhub/internal/middleware"
)

// MessageController handles conversation endpoints
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// GetThread godoc
// @Summary Get a conversation
// @Description Retrieve all messages exchanged with another account, oldest first. Requires an active pairing unless the caller is staff.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other account ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "No active pairing with this account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /messages/{userId} [get]
func (c *MessageController) GetThread(ctx *gin.Context) {
	callerID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	otherUserID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid user ID")))
		return
	}

	messages, err := c.messageService.ListThread(ctx, callerID, otherUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToMessageResponses(messages)))
}

// PostMessage godoc
// @Summary Send a message
// @Description Append a message to the conversation with another account. The same pairing check as reading applies; a denied send stores nothing.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Recipient account ID"
// @Param request body dto.SendMessageRequest true "Message text"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 403 {object} dto.ErrorResponse "No active pairing with this account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /messages/{userId} [post]
func (c *MessageController) PostMessage(ctx *gin.Context) {
	callerID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	otherUserID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid user ID")))
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	message, err := c.messageService.PostMessage(ctx, callerID, otherUserID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToMessageResponse(message)))
}
