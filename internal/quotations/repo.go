package quotations

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Repository exposes quotation persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quotations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new draft quotation.
func (r *Repository) Create(ctx context.Context, dto CreateQuotationDTO) (*models.Quotation, error) {
	quotation := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(quotation).Error; err != nil {
		return nil, err
	}
	return quotation, nil
}

// FindByID loads a quotation by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// List returns a page of quotations matching the filter.
func (r *Repository) List(ctx context.Context, filter ListQuotationsFilter) ([]models.Quotation, int64, error) {
	n := filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Quotation{})
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Quotation
	if err := query.
		Order("created_at DESC").
		Offset(n.Offset()).
		Limit(n.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the provided mutable fields to a draft quotation row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateQuotationDTO) error {
	updates := map[string]any{}
	if dto.Items != nil {
		updates["items"] = pq.StringArray(*dto.Items)
	}
	if dto.Conditions != nil {
		updates["conditions"] = pq.StringArray(*dto.Conditions)
	}
	if dto.TotalAmount != nil {
		updates["total_amount"] = *dto.TotalAmount
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatus writes a status transition; the rejection reason is
// cleared on any non-rejected status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuotationStatus, reason *string) error {
	updates := map[string]any{
		"status":           status,
		"rejection_reason": nil,
	}
	if status == enums.QuotationStatusRejected && reason != nil {
		updates["rejection_reason"] = *reason
	}
	return r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the quotation row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Quotation{}, "id = ?", id).Error
}
