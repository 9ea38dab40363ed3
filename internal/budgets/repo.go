package budgets

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Repository exposes budget persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a budgets repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the budget with its expense rows in one transaction.
func (r *Repository) Create(ctx context.Context, dto CreateBudgetDTO) (*models.Budget, error) {
	budget := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, err
	}
	return budget, nil
}

// FindByID loads a budget with its expenses.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&budget, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// List returns a page of budgets matching the filter. Expenses are not
// loaded on list queries.
func (r *Repository) List(ctx context.Context, filter ListBudgetsFilter) ([]models.Budget, int64, error) {
	n := filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Budget{})
	if s := strings.TrimSpace(n.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(remarks) LIKE ?", like, like)
	}
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Budget
	if err := query.
		Order("created_at DESC").
		Offset(n.Offset()).
		Limit(n.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the mutable fields; a non-nil expense set replaces all
// existing rows and recomputes the stored total atomically.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateBudgetDTO) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if dto.Name != nil {
			updates["name"] = *dto.Name
		}
		if dto.Remarks != nil {
			updates["remarks"] = *dto.Remarks
		}

		if dto.Expenses != nil {
			if err := tx.Delete(&models.BudgetExpense{}, "budget_id = ?", id).Error; err != nil {
				return err
			}
			total := decimal.Zero
			for _, input := range *dto.Expenses {
				expense := models.BudgetExpense{
					ID:          uuid.New(),
					BudgetID:    id,
					Description: input.Description,
					Category:    input.Category,
					Amount:      input.Amount,
				}
				if err := tx.Create(&expense).Error; err != nil {
					return err
				}
				total = total.Add(input.Amount)
			}
			updates["total_amount"] = total
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Budget{}).Where("id = ?", id).Updates(updates).Error
	})
}

// UpdateStatus writes the approval decision and remarks.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApprovalStatus, remarks *string) error {
	updates := map[string]any{"status": status}
	if remarks != nil {
		updates["remarks"] = *remarks
	}
	return r.db.WithContext(ctx).
		Model(&models.Budget{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the budget row and its expenses.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BudgetExpense{}, "budget_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Budget{}, "id = ?", id).Error
	})
}
