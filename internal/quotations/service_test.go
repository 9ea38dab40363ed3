package quotations

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/internal/notifications"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
)

func setupQuotationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:quotations_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS quotations (
  id TEXT PRIMARY KEY,
  event_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  items TEXT NOT NULL DEFAULT '{}',
  conditions TEXT NOT NULL DEFAULT '{}',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'Draft',
  rejection_reason TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{QuotationRepo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func seedQuotation(t *testing.T, svc Service) *QuotationDTO {
	t.Helper()
	quotation, err := svc.CreateQuotation(context.Background(), CreateQuotationDTO{
		EventID:     uuid.New(),
		ClientID:    uuid.New(),
		Items:       []string{"Stage setup", "Sound system"},
		Conditions:  []string{"50% advance"},
		TotalAmount: decimal.RequireFromString("2500"),
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)
	return quotation
}

func TestCreateQuotationValidation(t *testing.T) {
	db := setupQuotationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.CreateQuotation(ctx, CreateQuotationDTO{
		EventID:  uuid.New(),
		ClientID: uuid.New(),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	created := seedQuotation(t, svc)
	assert.Equal(t, enums.QuotationStatusDraft, created.Status)
	assert.Equal(t, []string{"Stage setup", "Sound system"}, created.Items)
}

func TestQuotationWorkflow(t *testing.T) {
	db := setupQuotationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedQuotation(t, svc)

	// approval requires a prior submit
	_, err := svc.Approve(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	submitted, err := svc.Submit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.QuotationStatusPendingApproval, submitted.Status)

	approved, err := svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.QuotationStatusApproved, approved.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	db := setupQuotationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedQuotation(t, svc)

	_, err := svc.Submit(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, created.ID, "   ")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	rejected, err := svc.Reject(ctx, created.ID, "pricing out of range")
	require.NoError(t, err)
	assert.Equal(t, enums.QuotationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "pricing out of range", *rejected.RejectionReason)
}

func TestOnlyDraftsAreEditable(t *testing.T) {
	db := setupQuotationsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedQuotation(t, svc)

	newItems := []string{"Stage setup"}
	updated, err := svc.UpdateQuotation(ctx, created.ID, UpdateQuotationDTO{Items: &newItems})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stage setup"}, updated.Items)

	_, err = svc.Submit(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.UpdateQuotation(ctx, created.ID, UpdateQuotationDTO{Items: &newItems})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

type recordingNotifier struct {
	raised []notifications.CreateNotificationDTO
}

func (n *recordingNotifier) Notify(_ context.Context, dto notifications.CreateNotificationDTO) (*notifications.NotificationDTO, error) {
	n.raised = append(n.raised, dto)
	return &notifications.NotificationDTO{ID: uuid.New(), UserID: dto.UserID}, nil
}

func TestTransitionsNotifyAuthor(t *testing.T) {
	db := setupQuotationsTestDB(t)
	recorder := &recordingNotifier{}
	svc, err := NewService(ServiceParams{QuotationRepo: NewRepository(db), Notifier: recorder})
	require.NoError(t, err)
	ctx := context.Background()
	created := seedQuotation(t, svc)

	_, err = svc.Submit(ctx, created.ID)
	require.NoError(t, err)

	reason := "pricing out of range"
	_, err = svc.Reject(ctx, created.ID, reason)
	require.NoError(t, err)

	require.Len(t, recorder.raised, 2)
	for _, raised := range recorder.raised {
		assert.Equal(t, created.CreatedBy, raised.UserID)
		assert.Equal(t, enums.NotificationSourceQuotation, raised.SourceType)
		require.NotNil(t, raised.SourceID)
		assert.Equal(t, created.ID, *raised.SourceID)
	}
	assert.Equal(t, "Quotation submitted", recorder.raised[0].Title)
	assert.Contains(t, recorder.raised[1].Message, reason)
}

func TestDeleteQuotation(t *testing.T) {
	db := setupQuotationsTestDB(t)
	svc := newTestService(t, db)
	created := seedQuotation(t, svc)

	require.NoError(t, svc.DeleteQuotation(context.Background(), created.ID))

	err := svc.DeleteQuotation(context.Background(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
