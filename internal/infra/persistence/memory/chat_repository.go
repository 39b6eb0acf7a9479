package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type chatRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.Chat
	byMatch map[uuid.UUID]*entity.Chat
	order   []uuid.UUID
}

// NewChatRepository creates an empty in-memory chat store.
func NewChatRepository() repository.ChatRepository {
	return &chatRepository{
		byID:    make(map[uuid.UUID]*entity.Chat),
		byMatch: make(map[uuid.UUID]*entity.Chat),
	}
}

func cloneChat(c *entity.Chat) *entity.Chat {
	cp := *c
	if c.LastMessageAt != nil {
		at := *c.LastMessageAt
		cp.LastMessageAt = &at
	}

	return &cp
}

func (r *chatRepository) Create(_ context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byMatch[chat.MatchID]; ok {
		return repository.ErrChatExists
	}

	stored := cloneChat(chat)
	r.byID[stored.ID] = stored
	r.byMatch[stored.MatchID] = stored
	r.order = append(r.order, stored.ID)

	return nil
}

func (r *chatRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrChatNotFound
	}

	return cloneChat(chat), nil
}

func (r *chatRepository) FindByMatch(_ context.Context, matchID uuid.UUID) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.byMatch[matchID]
	if !ok {
		return nil, repository.ErrChatNotFound
	}

	return cloneChat(chat), nil
}

func (r *chatRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chats []*entity.Chat
	for _, id := range r.order {
		if chat := r.byID[id]; chat.HasParticipant(userID) {
			chats = append(chats, cloneChat(chat))
		}
	}

	// Most recently active first; chats with no messages sort by creation.
	sort.SliceStable(chats, func(i, j int) bool {
		return chatActivity(chats[i]).After(chatActivity(chats[j]))
	})

	return chats, nil
}

func chatActivity(c *entity.Chat) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}

	return c.CreatedAt
}

func (r *chatRepository) TouchLastMessage(_ context.Context, chatID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.byID[chatID]
	if !ok {
		return repository.ErrChatNotFound
	}

	stamped := at
	chat.LastMessageAt = &stamped

	return nil
}

type messageRepository struct {
	mu     sync.Mutex
	byChat map[uuid.UUID][]*entity.Message
}

// NewMessageRepository creates an empty in-memory message store.
func NewMessageRepository() repository.MessageRepository {
	return &messageRepository{byChat: make(map[uuid.UUID][]*entity.Message)}
}

func cloneMessage(m *entity.Message) *entity.Message {
	cp := *m

	return &cp
}

func (r *messageRepository) Append(_ context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byChat[message.ChatID] = append(r.byChat[message.ChatID], cloneMessage(message))

	return nil
}

func (r *messageRepository) ListByChat(_ context.Context, chatID uuid.UUID) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byChat[chatID]
	messages := make([]*entity.Message, 0, len(stored))
	for _, m := range stored {
		messages = append(messages, cloneMessage(m))
	}

	return messages, nil
}

func (r *messageRepository) MarkRead(_ context.Context, chatID, readerID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flipped := 0
	for _, m := range r.byChat[chatID] {
		if m.SenderID != readerID && !m.Read {
			m.Read = true
			flipped++
		}
	}

	return flipped, nil
}

func (r *messageRepository) CountUnreadFrom(_ context.Context, chatID, senderID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, m := range r.byChat[chatID] {
		if m.SenderID == senderID && !m.Read {
			count++
		}
	}

	return count, nil
}

func (r *messageRepository) LastByChat(_ context.Context, chatID uuid.UUID) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byChat[chatID]
	if len(stored) == 0 {
		return nil, nil
	}

	return cloneMessage(stored[len(stored)-1]), nil
}
