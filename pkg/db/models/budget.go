package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Budget aggregates planned spend for an event.
type Budget struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventID     uuid.UUID            `gorm:"column:event_id;type:uuid;not null;index"`
	Name        string               `gorm:"column:name;not null"`
	TotalAmount decimal.Decimal      `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Status      enums.ApprovalStatus `gorm:"column:status;type:text;not null;default:'Pending'"`
	Remarks     *string              `gorm:"column:remarks"`
	CreatedBy   uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	Expenses    []BudgetExpense      `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// BudgetExpense is a single line item inside a budget.
type BudgetExpense struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BudgetID    uuid.UUID       `gorm:"column:budget_id;type:uuid;not null;index"`
	Description string          `gorm:"column:description;not null"`
	Category    *string         `gorm:"column:category"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
