package impl

import (
	"context"
	"testing"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchedPair runs the full mutual-like flow and returns the pair's chat ID.
func matchedPair(t *testing.T, env *testEnv, a, b *entity.User) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")

	_, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)
	out, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)
	require.NotNil(t, out.ChatID)

	return *out.ChatID
}

func TestChatService_ChatsForUser_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)
	chatID := matchedPair(t, env, a, b)

	_, err := env.chats.Send(ctx, usecase.SendMessageInput{ChatID: chatID, SenderID: b.ID, Content: "hey!"})
	require.NoError(t, err)

	summaries, err := env.chats.ChatsForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, b.ID, summary.OtherUserID)
	assert.Equal(t, "Kerem", summary.OtherUserName)
	require.NotNil(t, summary.LastMessage)
	assert.Equal(t, "hey!", summary.LastMessage.Content)
	assert.Equal(t, 1, summary.UnreadCount)
}

func TestChatService_ChatsForUser_UnresolvableCounterpart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ayse", entity.GenderFemale)

	ghost := uuid.New()
	chat := &entity.Chat{ID: uuid.New(), MatchID: uuid.New(), UserA: a.ID, UserB: ghost}
	require.NoError(t, env.chatRepo.Create(ctx, chat))

	summaries, err := env.chats.ChatsForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Unknown User", summaries[0].OtherUserName)
}

func TestChatService_Messages_UnknownChat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.chats.Messages(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrChatNotFound)
}

func TestChatService_Send_NonParticipant(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)
	stranger := env.addUser(t, "Can", entity.GenderMale)
	chatID := matchedPair(t, env, a, b)

	_, err := env.chats.Send(context.Background(), usecase.SendMessageInput{
		ChatID: chatID, SenderID: stranger.ID, Content: "let me in",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotChatParticipant)
}

func TestChatService_Send_AppendsInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)
	chatID := matchedPair(t, env, a, b)

	for _, content := range []string{"hi", "how's the night?", "come to the bar"} {
		_, err := env.chats.Send(ctx, usecase.SendMessageInput{ChatID: chatID, SenderID: a.ID, Content: content})
		require.NoError(t, err)
	}

	messages, err := env.chats.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "come to the bar", messages[2].Content)
}

func TestChatService_MarkRead_FlipsOnlyIncoming(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)
	chatID := matchedPair(t, env, a, b)

	_, err := env.chats.Send(ctx, usecase.SendMessageInput{ChatID: chatID, SenderID: a.ID, Content: "mine"})
	require.NoError(t, err)
	_, err = env.chats.Send(ctx, usecase.SendMessageInput{ChatID: chatID, SenderID: b.ID, Content: "theirs"})
	require.NoError(t, err)
	_, err = env.chats.Send(ctx, usecase.SendMessageInput{ChatID: chatID, SenderID: b.ID, Content: "theirs again"})
	require.NoError(t, err)

	flipped, err := env.chats.MarkRead(ctx, chatID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, flipped)

	summaries, err := env.chats.ChatsForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].UnreadCount)

	// The other side still has Ayse's message unread.
	theirs, err := env.chats.ChatsForUser(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, 1, theirs[0].UnreadCount)
}
