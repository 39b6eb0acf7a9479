package handler

import (
	"log/slog"
	"net/http"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
	Logger *slog.Logger
}

// ChatHandler holds dependencies for the match-scoped messaging handlers.
type ChatHandler struct {
	chatUC usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler.
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{
		chatUC: params.ChatUC,
		logger: params.Logger,
	}
}

// SendMessageRequest is the body of a chat message.
type SendMessageRequest struct {
	ChatID   string `json:"chat_id" validate:"required,uuid"`
	SenderID string `json:"sender_id" validate:"required,uuid"`
	Content  string `json:"content" validate:"required,max=2000"`
}

// ChatsForUser returns the user's chats with counterpart, last message and
// unread count.
func (h *ChatHandler) ChatsForUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	chats, err := h.chatUC.ChatsForUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, chats, "Chats retrieved successfully")
}

// Messages returns the chat's messages, oldest first.
func (h *ChatHandler) Messages(c echo.Context) error {
	chatID, err := pathUUID(c, "chatId")
	if err != nil {
		return err
	}

	messages, err := h.chatUC.Messages(c.Request().Context(), chatID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved successfully")
}

// Send appends a message to a chat.
func (h *ChatHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	chatID, _ := uuid.Parse(req.ChatID)
	senderID, _ := uuid.Parse(req.SenderID)

	message, err := h.chatUC.Send(c.Request().Context(), usecase.SendMessageInput{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Message sent successfully")
}

// MarkRead flips the read flag on every message addressed to the user.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	chatID, err := pathUUID(c, "chatId")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	count, err := h.chatUC.MarkRead(c.Request().Context(), chatID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"marked_read": count}, "Messages marked as read")
}
