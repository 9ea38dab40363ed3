package notifications

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:notifications_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  source_type TEXT NOT NULL,
  source_id TEXT,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{NotificationRepo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func notify(t *testing.T, svc Service, userID uuid.UUID, title string) *NotificationDTO {
	t.Helper()
	notification, err := svc.Notify(context.Background(), CreateNotificationDTO{
		UserID:     userID,
		SourceType: enums.NotificationSourceTask,
		Title:      title,
		Message:    "status changed",
	})
	require.NoError(t, err)
	return notification
}

func TestNotifyValidation(t *testing.T) {
	db := setupNotificationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.Notify(ctx, CreateNotificationDTO{
		UserID:     uuid.New(),
		SourceType: enums.NotificationSource("pigeon"),
		Title:      "hello",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	created := notify(t, svc, uuid.New(), "Task updated")
	assert.False(t, created.IsRead)
	assert.Nil(t, created.ReadAt)
}

func TestListForUserScopesAndCounts(t *testing.T) {
	db := setupNotificationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	notify(t, svc, userID, "one")
	notify(t, svc, userID, "two")
	notify(t, svc, uuid.New(), "someone else")

	feed, meta, unread, err := svc.ListForUser(ctx, userID, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, feed, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, int64(2), unread)
}

func TestMarkRead(t *testing.T) {
	db := setupNotificationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	created := notify(t, svc, userID, "one")

	read, err := svc.MarkRead(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	// marking again keeps the original read timestamp
	again, err := svc.MarkRead(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.True(t, again.ReadAt.Equal(*read.ReadAt))

	// another user cannot touch the notification
	_, err = svc.MarkRead(ctx, uuid.New(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestMarkAllRead(t *testing.T) {
	db := setupNotificationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	first := notify(t, svc, userID, "one")
	notify(t, svc, userID, "two")
	notify(t, svc, userID, "three")

	_, err := svc.MarkRead(ctx, userID, first.ID)
	require.NoError(t, err)

	affected, err := svc.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	_, _, unread, err := svc.ListForUser(ctx, userID, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
