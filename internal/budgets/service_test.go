package budgets

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

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

func setupBudgetsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:budgets_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS budgets (
  id TEXT PRIMARY KEY,
  event_id TEXT NOT NULL,
  name TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  remarks TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS budget_expenses (
  id TEXT PRIMARY KEY,
  budget_id TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT,
  amount NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{BudgetRepo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedBudget(t *testing.T, svc Service, name string, expenses ...ExpenseInput) *BudgetDTO {
	t.Helper()
	budget, err := svc.CreateBudget(context.Background(), CreateBudgetDTO{
		EventID:   uuid.New(),
		Name:      name,
		Expenses:  expenses,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	return budget
}

func TestCreateBudgetComputesTotal(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)

	created := seedBudget(t, svc, "Venue budget",
		ExpenseInput{Description: "Hall rental", Amount: money("1200.50")},
		ExpenseInput{Description: "Security", Amount: money("300")},
	)
	assert.Equal(t, enums.ApprovalStatusPending, created.Status)
	assert.True(t, created.TotalAmount.Equal(money("1500.50")))
	assert.Len(t, created.Expenses, 2)

	_, err := svc.CreateBudget(context.Background(), CreateBudgetDTO{
		EventID: uuid.New(),
		Name:    "Bad",
		Expenses: []ExpenseInput{
			{Description: "Refund", Amount: money("-10")},
		},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListBudgetsSearchAndFilter(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedBudget(t, svc, "Venue budget")
	seedBudget(t, svc, "Catering budget")
	third := seedBudget(t, svc, "Marketing budget")

	approved := enums.ApprovalStatusApproved
	_, err := svc.UpdateStatus(ctx, third.ID, UpdateStatusDTO{Status: approved})
	require.NoError(t, err)

	venue, meta, err := svc.ListBudgets(ctx, ListBudgetsFilter{Params: pagination.Params{Search: "venue"}})
	require.NoError(t, err)
	assert.Len(t, venue, 1)
	assert.Equal(t, int64(1), meta.Total)

	approvedOnly, _, err := svc.ListBudgets(ctx, ListBudgetsFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, approvedOnly, 1)
	assert.Equal(t, "Marketing budget", approvedOnly[0].Name)
}

func TestUpdateBudgetReplacesExpenses(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	created := seedBudget(t, svc, "Venue budget",
		ExpenseInput{Description: "Hall rental", Amount: money("1000")},
	)

	replacement := []ExpenseInput{
		{Description: "Hall rental", Amount: money("900")},
		{Description: "Cleaning", Amount: money("150")},
	}
	updated, err := svc.UpdateBudget(ctx, created.ID, UpdateBudgetDTO{Expenses: &replacement})
	require.NoError(t, err)
	assert.Len(t, updated.Expenses, 2)
	assert.True(t, updated.TotalAmount.Equal(money("1050")))
}

func TestUpdateStatusRules(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedBudget(t, svc, "Venue budget")

	_, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusDTO{Status: enums.ApprovalStatusRejected})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	reason := "over the agreed cap"
	rejected, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusDTO{
		Status:  enums.ApprovalStatusRejected,
		Remarks: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusRejected, rejected.Status)
	require.NotNil(t, rejected.Remarks)
	assert.Equal(t, reason, *rejected.Remarks)
}

func TestApprovedBudgetIsFrozen(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedBudget(t, svc, "Venue budget")

	_, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusDTO{Status: enums.ApprovalStatusApproved})
	require.NoError(t, err)

	newName := "Renamed"
	_, err = svc.UpdateBudget(ctx, created.ID, UpdateBudgetDTO{Name: &newName})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestDeleteBudgetRemovesExpenses(t *testing.T) {
	db := setupBudgetsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	created := seedBudget(t, svc, "Venue budget",
		ExpenseInput{Description: "Hall rental", Amount: money("1000")},
	)

	require.NoError(t, svc.DeleteBudget(ctx, created.ID))

	var count int64
	require.NoError(t, db.Table("budget_expenses").Where("budget_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err := svc.DeleteBudget(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
