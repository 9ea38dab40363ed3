package budgets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// BudgetDTO is the transport shape for a budget with its expense lines.
type BudgetDTO struct {
	ID          uuid.UUID            `json:"id"`
	EventID     uuid.UUID            `json:"event_id"`
	Name        string               `json:"name"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Status      enums.ApprovalStatus `json:"status"`
	Remarks     *string              `json:"remarks,omitempty"`
	CreatedBy   uuid.UUID            `json:"created_by"`
	Expenses    []ExpenseDTO         `json:"expenses"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ExpenseDTO is a single budget line item.
type ExpenseDTO struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    *string         `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseInput is the shape accepted when writing expense lines.
type ExpenseInput struct {
	Description string          `json:"description" validate:"required"`
	Category    *string         `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

// CreateBudgetDTO holds the fields accepted when creating a budget.
type CreateBudgetDTO struct {
	EventID   uuid.UUID      `json:"event_id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Remarks   *string        `json:"remarks,omitempty"`
	Expenses  []ExpenseInput `json:"expenses,omitempty"`
	CreatedBy uuid.UUID      `json:"-"`
}

// UpdateBudgetDTO carries the mutable budget fields. Nil means "leave as
// is"; a non-nil Expenses slice replaces the full expense set.
type UpdateBudgetDTO struct {
	Name     *string         `json:"name,omitempty"`
	Remarks  *string         `json:"remarks,omitempty"`
	Expenses *[]ExpenseInput `json:"expenses,omitempty"`
}

// UpdateStatusDTO carries an approval decision.
type UpdateStatusDTO struct {
	Status  enums.ApprovalStatus `json:"status" validate:"required"`
	Remarks *string              `json:"remarks,omitempty"`
}

// ListBudgetsFilter combines pagination with the optional list filters.
type ListBudgetsFilter struct {
	pagination.Params
	EventID *uuid.UUID
	Status  *enums.ApprovalStatus
}

func FromModel(b *models.Budget) *BudgetDTO {
	if b == nil {
		return nil
	}

	expenses := make([]ExpenseDTO, 0, len(b.Expenses))
	for _, e := range b.Expenses {
		expenses = append(expenses, ExpenseDTO{
			ID:          e.ID,
			Description: e.Description,
			Category:    e.Category,
			Amount:      e.Amount,
		})
	}

	return &BudgetDTO{
		ID:          b.ID,
		EventID:     b.EventID,
		Name:        b.Name,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		Remarks:     b.Remarks,
		CreatedBy:   b.CreatedBy,
		Expenses:    expenses,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToModel builds the budget row plus its expense rows. The total is
// always the sum of the expense amounts.
func (c CreateBudgetDTO) ToModel() *models.Budget {
	budget := &models.Budget{
		ID:        uuid.New(),
		EventID:   c.EventID,
		Name:      c.Name,
		Status:    enums.ApprovalStatusPending,
		Remarks:   c.Remarks,
		CreatedBy: c.CreatedBy,
	}

	total := decimal.Zero
	for _, input := range c.Expenses {
		budget.Expenses = append(budget.Expenses, models.BudgetExpense{
			ID:          uuid.New(),
			BudgetID:    budget.ID,
			Description: input.Description,
			Category:    input.Category,
			Amount:      input.Amount,
		})
		total = total.Add(input.Amount)
	}
	budget.TotalAmount = total
	return budget
}
