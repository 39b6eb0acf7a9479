package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ChatSummary is one row of the user's chat list.
type ChatSummary struct {
	Chat               *entity.Chat    `json:"chat"`
	OtherUserID        uuid.UUID       `json:"other_user_id"`
	OtherUserName      string          `json:"other_user_name"`
	OtherUserAvatarURL string          `json:"other_user_avatar_url,omitempty"`
	LastMessage        *entity.Message `json:"last_message,omitempty"`
	UnreadCount        int             `json:"unread_count"`
}

// SendMessageInput defines one outgoing chat message.
type SendMessageInput struct {
	ChatID   uuid.UUID
	SenderID uuid.UUID
	Content  string
}

// ChatUsecase defines the interface for match-scoped messaging.
type ChatUsecase interface {
	// ChatsForUser returns the user's chats, most recently active first,
	// each joined to the counterpart profile, last message and unread count.
	ChatsForUser(ctx context.Context, userID uuid.UUID) ([]*ChatSummary, error)

	// Messages returns the chat's messages, oldest first.
	Messages(ctx context.Context, chatID uuid.UUID) ([]*entity.Message, error)

	// Send appends a message. The sender must be a chat participant.
	Send(ctx context.Context, input SendMessageInput) (*entity.Message, error)

	// MarkRead flips the read flag on every message addressed to the user
	// and reports how many were flipped.
	MarkRead(ctx context.Context, chatID, userID uuid.UUID) (int, error)
}
