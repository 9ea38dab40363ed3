package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Quotation is a priced proposal sent to a client for review.
type Quotation struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventID         uuid.UUID             `gorm:"column:event_id;type:uuid;not null;index"`
	ClientID        uuid.UUID             `gorm:"column:client_id;type:uuid;not null"`
	Items           pq.StringArray        `gorm:"column:items;type:text[];not null;default:ARRAY[]::text[]"`
	Conditions      pq.StringArray        `gorm:"column:conditions;type:text[];not null;default:ARRAY[]::text[]"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Status          enums.QuotationStatus `gorm:"column:status;type:text;not null;default:'Draft'"`
	RejectionReason *string               `gorm:"column:rejection_reason"`
	CreatedBy       uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
