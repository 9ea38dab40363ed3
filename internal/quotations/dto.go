package quotations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// QuotationDTO is the transport shape for a quotation.
type QuotationDTO struct {
	ID              uuid.UUID             `json:"id"`
	EventID         uuid.UUID             `json:"event_id"`
	ClientID        uuid.UUID             `json:"client_id"`
	Items           []string              `json:"items"`
	Conditions      []string              `json:"conditions"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Status          enums.QuotationStatus `json:"status"`
	RejectionReason *string               `json:"rejection_reason,omitempty"`
	CreatedBy       uuid.UUID             `json:"created_by"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// CreateQuotationDTO holds the fields accepted when drafting a quotation.
type CreateQuotationDTO struct {
	EventID     uuid.UUID       `json:"event_id" validate:"required"`
	ClientID    uuid.UUID       `json:"client_id" validate:"required"`
	Items       []string        `json:"items" validate:"required,min=1"`
	Conditions  []string        `json:"conditions,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"required"`
	CreatedBy   uuid.UUID       `json:"-"`
}

// UpdateQuotationDTO carries the mutable draft fields. Nil means "leave
// as is".
type UpdateQuotationDTO struct {
	Items       *[]string        `json:"items,omitempty"`
	Conditions  *[]string        `json:"conditions,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

// ListQuotationsFilter combines pagination with the optional filters.
type ListQuotationsFilter struct {
	pagination.Params
	EventID  *uuid.UUID
	ClientID *uuid.UUID
	Status   *enums.QuotationStatus
}

func FromModel(q *models.Quotation) *QuotationDTO {
	if q == nil {
		return nil
	}

	return &QuotationDTO{
		ID:              q.ID,
		EventID:         q.EventID,
		ClientID:        q.ClientID,
		Items:           append([]string{}, q.Items...),
		Conditions:      append([]string{}, q.Conditions...),
		TotalAmount:     q.TotalAmount,
		Status:          q.Status,
		RejectionReason: q.RejectionReason,
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func (c CreateQuotationDTO) ToModel() *models.Quotation {
	conditions := c.Conditions
	if conditions == nil {
		conditions = []string{}
	}

	return &models.Quotation{
		ID:          uuid.New(),
		EventID:     c.EventID,
		ClientID:    c.ClientID,
		Items:       pq.StringArray(c.Items),
		Conditions:  pq.StringArray(conditions),
		TotalAmount: c.TotalAmount,
		Status:      enums.QuotationStatusDraft,
		CreatedBy:   c.CreatedBy,
	}
}
