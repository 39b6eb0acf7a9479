package repository

import (
	"context"
	"errors"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for chat persistence.
var (
	// ErrChatNotFound is returned when a chat is not found.
	ErrChatNotFound = errors.New("chat not found")
	// ErrChatExists is returned when a chat already exists for the match.
	ErrChatExists = errors.New("chat already exists for match")
)

// ChatRepository defines the operations for chat persistence. Chats are
// unique per match: Create enforces the constraint at the store boundary.
type ChatRepository interface {
	// Create persists a new chat, or fails with ErrChatExists when the
	// match already has one.
	Create(ctx context.Context, chat *entity.Chat) error

	// FindByID retrieves a single chat.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Chat, error)

	// FindByMatch retrieves the chat created for a match.
	FindByMatch(ctx context.Context, matchID uuid.UUID) (*entity.Chat, error)

	// ListForUser returns chats where the user is either participant,
	// most recently active first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Chat, error)

	// TouchLastMessage updates the chat's last-message timestamp.
	TouchLastMessage(ctx context.Context, chatID uuid.UUID, at time.Time) error
}

// MessageRepository defines the operations for the append-only message log.
type MessageRepository interface {
	// Append persists a new message.
	Append(ctx context.Context, message *entity.Message) error

	// ListByChat returns the chat's messages oldest first.
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]*entity.Message, error)

	// MarkRead flips the read flag on every message in the chat NOT
	// authored by the reader and reports how many were flipped.
	MarkRead(ctx context.Context, chatID, readerID uuid.UUID) (int, error)

	// CountUnreadFrom counts unread messages in the chat authored by the
	// given sender.
	CountUnreadFrom(ctx context.Context, chatID, senderID uuid.UUID) (int, error)

	// LastByChat returns the most recent message in the chat, or nil when
	// the chat has none.
	LastByChat(ctx context.Context, chatID uuid.UUID) (*entity.Message, error)
}
