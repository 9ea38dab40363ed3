package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notificationsvc "github.com/plannerhq/eventra-backend/internal/notifications"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

type testNotificationsService struct {
	notificationsvc.Service
	markReadFn    func(ctx context.Context, userID, id uuid.UUID) (*notificationsvc.NotificationDTO, error)
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	listFn        func(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]notificationsvc.NotificationDTO, pagination.Meta, int64, error)
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*notificationsvc.NotificationDTO, error) {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, id)
	}
	return &notificationsvc.NotificationDTO{ID: id, UserID: userID, IsRead: true}, nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]notificationsvc.NotificationDTO, pagination.Meta, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, params)
	}
	return nil, pagination.Meta{}, 0, nil
}

func TestMarkNotificationReadScopesToActor(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()

	var gotUser, gotID uuid.UUID
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, id uuid.UUID) (*notificationsvc.NotificationDTO, error) {
			gotUser, gotID = uid, id
			return &notificationsvc.NotificationDTO{ID: id, UserID: uid, IsRead: true}, nil
		},
	}

	req := newAuthedRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", "", userID, map[string]string{"notificationId": notificationID.String()})
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, notificationID, gotID)
}

func TestMarkNotificationReadMissingUser(t *testing.T) {
	notificationID := uuid.New()
	req := newAuthedRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", "", uuid.Nil, map[string]string{"notificationId": notificationID.String()})
	resp := httptest.NewRecorder()
	MarkNotificationRead(&testNotificationsService{}, testLogger())(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListNotificationsIncludesUnreadCount(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, uid uuid.UUID, params pagination.Params) ([]notificationsvc.NotificationDTO, pagination.Meta, int64, error) {
			return []notificationsvc.NotificationDTO{{ID: uuid.New(), UserID: uid}}, pagination.NewMeta(1, params.Normalize()), 1, nil
		},
	}

	req := newAuthedRequest(http.MethodGet, "/api/v1/notifications", "", userID, nil)
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data struct {
			Notifications []json.RawMessage `json:"notifications"`
			UnreadCount   int64             `json:"unread_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Notifications, 1)
	assert.Equal(t, int64(1), envelope.Data.UnreadCount)
}
