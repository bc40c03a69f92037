package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/classhub/internal/controller"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/service"
	"github.com/rs/zerolog/log"
)

// UserController covers features every authenticated user has regardless of
// role: direct messages, notifications and the study assistant.
type UserController struct {
	messageSvc      service.MessageService
	notificationSvc service.NotificationService
	assistantSvc    service.AssistantService
}

func NewUserController(
	messageSvc service.MessageService,
	notificationSvc service.NotificationService,
	assistantSvc service.AssistantService,
) *UserController {
	return &UserController{
		messageSvc:      messageSvc,
		notificationSvc: notificationSvc,
		assistantSvc:    assistantSvc,
	}
}

// --- Messages ---

// SendMessage godoc
// @Summary Send a direct message
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body dto.MessageSendRequest true "Receiver and content"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot message yourself"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Router /messages [post]
func (ctrl *UserController) SendMessage(c *gin.Context) {
	var req dto.MessageSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind MessageSendRequest")
		controller.BindError(c, err)
		return
	}

	message, err := ctrl.messageSvc.SendMessage(controller.UserID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetConversation godoc
// @Summary Get the conversation with another user
// @Description Viewing marks the other party's messages as read.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Other user ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PagedResponse
// @Router /messages/{user_id} [get]
func (ctrl *UserController) GetConversation(c *gin.Context) {
	page, limit := controller.Pagination(c)
	resp, err := ctrl.messageSvc.GetConversation(controller.UserID(c), c.Param("user_id"), page, limit)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UnreadMessageCount godoc
// @Summary Count unread messages
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Router /messages/unread-count [get]
func (ctrl *UserController) UnreadMessageCount(c *gin.Context) {
	resp, err := ctrl.messageSvc.UnreadCount(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Notifications ---

// ListNotifications godoc
// @Summary List notifications, newest first
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PagedResponse
// @Router /notifications [get]
func (ctrl *UserController) ListNotifications(c *gin.Context) {
	page, limit := controller.Pagination(c)
	resp, err := ctrl.notificationSvc.ListNotifications(controller.UserID(c), page, limit)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkNotificationRead godoc
// @Summary Mark one notification as read
// @Tags user
// @Security BearerAuth
// @Param notification_id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{notification_id}/read [put]
func (ctrl *UserController) MarkNotificationRead(c *gin.Context) {
	if err := ctrl.notificationSvc.MarkRead(controller.UserID(c), c.Param("notification_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead godoc
// @Summary Mark all notifications as read
// @Tags user
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /notifications/read-all [put]
func (ctrl *UserController) MarkAllNotificationsRead(c *gin.Context) {
	if err := ctrl.notificationSvc.MarkAllRead(controller.UserID(c)); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Assistant ---

// CreateChat godoc
// @Summary Start a new assistant chat
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat body dto.ChatCreateRequest true "Optional course context and title"
// @Success 201 {object} dto.ChatResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /assistant/chats [post]
func (ctrl *UserController) CreateChat(c *gin.Context) {
	var req dto.ChatCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	chat, err := ctrl.assistantSvc.CreateChat(controller.UserID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

// ListChats godoc
// @Summary List assistant chats, most recent first
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ChatResponse
// @Router /assistant/chats [get]
func (ctrl *UserController) ListChats(c *gin.Context) {
	chats, err := ctrl.assistantSvc.ListChats(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// GetChat godoc
// @Summary Get a chat with its full message history
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param chat_id path string true "Chat ID"
// @Success 200 {object} dto.ChatDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /assistant/chats/{chat_id} [get]
func (ctrl *UserController) GetChat(c *gin.Context) {
	chat, err := ctrl.assistantSvc.GetChat(controller.UserID(c), c.Param("chat_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// DeleteChat godoc
// @Summary Delete a chat
// @Tags user
// @Security BearerAuth
// @Param chat_id path string true "Chat ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /assistant/chats/{chat_id} [delete]
func (ctrl *UserController) DeleteChat(c *gin.Context) {
	if err := ctrl.assistantSvc.DeleteChat(controller.UserID(c), c.Param("chat_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendChatMessage godoc
// @Summary Send a message to the assistant
// @Description Stores the user message, generates a reply with recent context and returns the assistant's message.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat_id path string true "Chat ID"
// @Param message body dto.SendChatMessageRequest true "Message content"
// @Success 200 {object} dto.ChatMessageResponse
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Failure 500 {object} dto.ErrorResponse "Assistant unavailable"
// @Router /assistant/chats/{chat_id}/messages [post]
func (ctrl *UserController) SendChatMessage(c *gin.Context) {
	var req dto.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	message, err := ctrl.assistantSvc.SendMessage(c.Request.Context(), controller.UserID(c), c.Param("chat_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}
