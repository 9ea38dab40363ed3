package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// InventoryItem is a pooled rental asset with a fixed total quantity.
// Per-date availability is derived from active reservations, never stored.
type InventoryItem struct {
	ID            uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string                 `gorm:"column:name;not null"`
	Description   *string                `gorm:"column:description"`
	Category      *string                `gorm:"column:category"`
	Condition     enums.ItemCondition    `gorm:"column:condition;type:text;not null;default:'New'"`
	TotalQuantity int64                  `gorm:"column:total_quantity;not null"`
	UnitCost      decimal.Decimal        `gorm:"column:unit_cost;type:numeric(14,2);not null;default:0"`
	Variations    pq.StringArray         `gorm:"column:variations;type:text[];not null;default:ARRAY[]::text[]"`
	Images        pq.StringArray         `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedBy     uuid.UUID              `gorm:"column:created_by;type:uuid;not null"`
	Reservations  []InventoryReservation `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
