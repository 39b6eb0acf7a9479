package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a two-party conversation created exactly once per completed match.
type Chat struct {
	ID            uuid.UUID  `json:"id"`
	MatchID       uuid.UUID  `json:"match_id"`
	UserA         uuid.UUID  `json:"user_a"`
	UserB         uuid.UUID  `json:"user_b"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasParticipant reports whether the user is one of the two chat members.
func (c *Chat) HasParticipant(userID uuid.UUID) bool {
	return c.UserA == userID || c.UserB == userID
}

// OtherParticipant returns the counterpart of the given user. Callers must
// ensure the user is a participant first.
func (c *Chat) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.UserA == userID {
		return c.UserB
	}

	return c.UserA
}

// Message is a single append-only chat message. The read flag flips from
// false to true when the recipient marks the chat read.
type Message struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
