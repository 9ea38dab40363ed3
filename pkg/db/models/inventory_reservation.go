package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryReservation holds quantity against an item for a single date.
// Rows are append-only; cancellation stamps CancelledAt instead of deleting
// so the ledger stays auditable.
type InventoryReservation struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID      uuid.UUID  `gorm:"column:item_id;type:uuid;not null;index"`
	EventID     *uuid.UUID `gorm:"column:event_id;type:uuid"`
	Quantity    int64      `gorm:"column:quantity;not null"`
	ReservedOn  time.Time  `gorm:"column:reserved_on;type:date;not null;index"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
