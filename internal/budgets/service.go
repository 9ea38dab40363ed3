package budgets

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// Service exposes business rules for budget management.
type Service interface {
	CreateBudget(ctx context.Context, dto CreateBudgetDTO) (*BudgetDTO, error)
	GetBudget(ctx context.Context, id uuid.UUID) (*BudgetDTO, error)
	ListBudgets(ctx context.Context, filter ListBudgetsFilter) ([]BudgetDTO, pagination.Meta, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, dto UpdateBudgetDTO) (*BudgetDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, dto UpdateStatusDTO) (*BudgetDTO, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the budgets service.
type ServiceParams struct {
	BudgetRepo *Repository
}

type service struct {
	budgetRepo *Repository
}

// NewService builds a budgets service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.BudgetRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget repo is required")
	}
	return &service{budgetRepo: params.BudgetRepo}, nil
}

// CreateBudget validates the expense lines and persists a pending budget.
func (s *service) CreateBudget(ctx context.Context, dto CreateBudgetDTO) (*BudgetDTO, error) {
	if dto.EventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget name is required")
	}
	if err := validateExpenses(dto.Expenses); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create budget")
	}
	return FromModel(budget), nil
}

// GetBudget loads a single budget with its expenses.
func (s *service) GetBudget(ctx context.Context, id uuid.UUID) (*BudgetDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget id is required")
	}
	return s.loadBudget(ctx, id)
}

// ListBudgets returns a filtered, paginated page of budgets.
func (s *service) ListBudgets(ctx context.Context, filter ListBudgetsFilter) ([]BudgetDTO, pagination.Meta, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval status filter")
	}
	rows, total, err := s.budgetRepo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list budgets")
	}
	out := make([]BudgetDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, filter.Params), nil
}

// UpdateBudget applies changes; replacing the expense set recomputes the
// stored total. Approved budgets are frozen.
func (s *service) UpdateBudget(ctx context.Context, id uuid.UUID, dto UpdateBudgetDTO) (*BudgetDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget id is required")
	}
	if dto.Expenses != nil {
		if err := validateExpenses(*dto.Expenses); err != nil {
			return nil, err
		}
	}

	current, err := s.loadBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == enums.ApprovalStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "approved budgets cannot be edited")
	}

	if err := s.budgetRepo.Update(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update budget")
	}
	return s.loadBudget(ctx, id)
}

// UpdateStatus records an approval decision. Rejection requires remarks
// explaining the decision.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, dto UpdateStatusDTO) (*BudgetDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget id is required")
	}
	if !dto.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval status").WithDetails(map[string]any{"status": string(dto.Status)})
	}
	if dto.Status == enums.ApprovalStatusRejected && (dto.Remarks == nil || strings.TrimSpace(*dto.Remarks) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "remarks are required when rejecting a budget")
	}

	if _, err := s.loadBudget(ctx, id); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.UpdateStatus(ctx, id, dto.Status, dto.Remarks); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update budget status")
	}
	return s.loadBudget(ctx, id)
}

// DeleteBudget removes the budget and its expense rows.
func (s *service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "budget id is required")
	}
	if _, err := s.loadBudget(ctx, id); err != nil {
		return err
	}
	if err := s.budgetRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete budget")
	}
	return nil
}

func (s *service) loadBudget(ctx context.Context, id uuid.UUID) (*BudgetDTO, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "budget not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load budget")
	}
	return FromModel(budget), nil
}

func validateExpenses(expenses []ExpenseInput) error {
	for _, expense := range expenses {
		if strings.TrimSpace(expense.Description) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "expense description is required")
		}
		if expense.Amount.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "expense amount must not be negative").WithDetails(map[string]any{"description": expense.Description})
		}
	}
	return nil
}
