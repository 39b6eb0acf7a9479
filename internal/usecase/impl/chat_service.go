package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// unknownUserName labels counterparts whose account no longer resolves.
const unknownUserName = "Unknown User"

// chatService implements the ChatUsecase interface.
type chatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	ChatRepo    repository.ChatRepository
	MessageRepo repository.MessageRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		chatRepo:    params.ChatRepo,
		messageRepo: params.MessageRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ChatsForUser returns the user's chat list, most recently active first.
func (srv *chatService) ChatsForUser(ctx context.Context, userID uuid.UUID) ([]*usecase.ChatSummary, error) {
	chats, err := srv.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list chats")
	}

	summaries := make([]*usecase.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		otherID := chat.OtherParticipant(userID)

		summary := &usecase.ChatSummary{
			Chat:          chat,
			OtherUserID:   otherID,
			OtherUserName: unknownUserName,
		}
		if other, err := srv.userRepo.FindByID(ctx, otherID); err == nil {
			summary.OtherUserName = other.Name
			summary.OtherUserAvatarURL = other.AvatarURL
		}

		last, err := srv.messageRepo.LastByChat(ctx, chat.ID)
		if err != nil {
			return nil, errors.Wrap(err, "load last message")
		}
		summary.LastMessage = last

		unread, err := srv.messageRepo.CountUnreadFrom(ctx, chat.ID, otherID)
		if err != nil {
			return nil, errors.Wrap(err, "count unread")
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Messages returns the chat's messages, oldest first.
func (srv *chatService) Messages(ctx context.Context, chatID uuid.UUID) ([]*entity.Message, error) {
	if _, err := srv.findChat(ctx, chatID); err != nil {
		return nil, err
	}

	return srv.messageRepo.ListByChat(ctx, chatID)
}

// Send appends a message from a chat participant.
func (srv *chatService) Send(ctx context.Context, input usecase.SendMessageInput) (*entity.Message, error) {
	chat, err := srv.findChat(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(input.SenderID) {
		return nil, domainerrors.ErrNotChatParticipant
	}

	now := time.Now()
	message := &entity.Message{
		ID:        uuid.New(),
		ChatID:    input.ChatID,
		SenderID:  input.SenderID,
		Content:   input.Content,
		CreatedAt: now,
	}

	if err := srv.messageRepo.Append(ctx, message); err != nil {
		return nil, errors.Wrap(err, "append message")
	}
	if err := srv.chatRepo.TouchLastMessage(ctx, input.ChatID, now); err != nil {
		// The message is already stored; a stale ordering stamp only
		// affects chat-list sorting.
		srv.log(ctx).Warn("chat activity stamp not updated", slog.Any("error", err))
	}

	return message, nil
}

// MarkRead flips the read flag on every message addressed to the user.
func (srv *chatService) MarkRead(ctx context.Context, chatID, userID uuid.UUID) (int, error) {
	chat, err := srv.findChat(ctx, chatID)
	if err != nil {
		return 0, err
	}
	if !chat.HasParticipant(userID) {
		return 0, domainerrors.ErrNotChatParticipant
	}

	flipped, err := srv.messageRepo.MarkRead(ctx, chatID, userID)
	if err != nil {
		return 0, errors.Wrap(err, "mark messages read")
	}

	return flipped, nil
}

func (srv *chatService) findChat(ctx context.Context, chatID uuid.UUID) (*entity.Chat, error) {
	chat, err := srv.chatRepo.FindByID(ctx, chatID)
	if errors.Is(err, repository.ErrChatNotFound) {
		return nil, domainerrors.ErrChatNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find chat")
	}

	return chat, nil
}
