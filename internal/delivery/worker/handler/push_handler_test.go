package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/service"
	"pulse/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushTest(t *testing.T) (*PushHandler, *echo.Echo) {
	t.Helper()

	handler := NewPushHandler(PushHandlerParams{
		Config:       &config.Config{},
		Logger:       slog.New(slog.DiscardHandler),
		ActivityRepo: memory.NewActivityRepository(),
	})

	return handler, echo.New()
}

func pushBody(t *testing.T, event service.DomainEvent) string {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	msg := PubSubMessage{Subscription: "projects/local/subscriptions/venue-activity-sub"}
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.MessageID = uuid.NewString()

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func TestPushHandler_HandlePush_IngestsActivity(t *testing.T) {
	handler, e := newPushTest(t)
	venueID := uuid.New()

	body := pushBody(t, service.DomainEvent{
		Kind:       "checkin.created",
		VenueID:    venueID,
		ActorID:    uuid.New(),
		OccurredAt: time.Now(),
	})

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.HandlePush(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	activities, err := handler.activityRepo.RecentByVenue(context.Background(), venueID, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "checkin.created", activities[0].Kind)
}

func TestPushHandler_HandlePush_BadBase64(t *testing.T) {
	handler, e := newPushTest(t)

	body := `{"message":{"data":"%%% not base64 %%%","messageId":"1"},"subscription":"s"}`
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.HandlePush(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_HandlePush_EventMissingVenueIsAcked(t *testing.T) {
	handler, e := newPushTest(t)

	// A malformed event must be acked, not retried forever.
	body := pushBody(t, service.DomainEvent{Kind: "checkin.created"})
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.HandlePush(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	activities, err := handler.activityRepo.RecentByVenue(context.Background(), uuid.Nil, 10)
	require.NoError(t, err)
	assert.Empty(t, activities)
}
