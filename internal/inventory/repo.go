package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// Repository owns the inventory tables. All reservation writes go
// through here so the capacity invariant has a single enforcement point.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateItem inserts a new inventory item.
func (r *Repository) CreateItem(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads an item with its full reservation ledger in
// creation order.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Preload("Reservations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns a page of items matching the filter. Ledgers are
// not loaded on list queries.
func (r *Repository) ListItems(ctx context.Context, filter ListItemsFilter) ([]models.InventoryItem, int64, error) {
	n := filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if s := strings.TrimSpace(n.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.Condition != nil {
		query = query.Where("condition = ?", *filter.Condition)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryItem
	if err := query.
		Order("created_at DESC").
		Offset(n.Offset()).
		Limit(n.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateItem applies the provided mutable fields to the item row.
func (r *Repository) UpdateItem(ctx context.Context, id uuid.UUID, dto UpdateItemDTO) error {
	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Condition != nil {
		updates["condition"] = *dto.Condition
	}
	if dto.TotalQuantity != nil {
		updates["total_quantity"] = *dto.TotalQuantity
	}
	if dto.UnitCost != nil {
		updates["unit_cost"] = *dto.UnitCost
	}
	if dto.Variations != nil {
		updates["variations"] = pq.StringArray(*dto.Variations)
	}
	if dto.Images != nil {
		updates["images"] = pq.StringArray(*dto.Images)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteItem removes the item together with its ledger.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InventoryReservation{}, "item_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InventoryItem{}, "id = ?", id).Error
	})
}

// ActiveReservedSum returns the total active quantity held against the
// item on one calendar date.
func (r *Repository) ActiveReservedSum(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("item_id = ? AND reserved_on = ? AND cancelled_at IS NULL", itemID, date.UTC().Format(dateLayout)).
		Scan(&sum).Error
	return sum, err
}

// MaxActiveReservedPerDate returns the largest per-date active total on
// the item's ledger; zero when no active reservations exist.
func (r *Repository) MaxActiveReservedPerDate(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var highest int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(day_total), 0) FROM (
			SELECT SUM(quantity) AS day_total
			FROM inventory_reservations
			WHERE item_id = ? AND cancelled_at IS NULL
			GROUP BY reserved_on
		) AS day_totals`, itemID).Scan(&highest).Error
	return highest, err
}

// InsertReservationIfAvailable appends a ledger row only if the
// per-date total still fits the item's capacity. The whole admission
// runs in one transaction that first locks the item row, so concurrent
// admissions for the same item serialize instead of each passing the
// capacity check against its own snapshot. sqlite allows a single
// writer and needs no row lock. Not-admitted means the item is missing
// or the capacity is exhausted.
func (r *Repository) InsertReservationIfAvailable(ctx context.Context, dto ReserveDTO) (*models.InventoryReservation, bool, error) {
	reservation := &models.InventoryReservation{
		ID:        uuid.New(),
		ItemID:    dto.ItemID,
		EventID:   dto.EventID,
		Quantity:  dto.Quantity,
		CreatedBy: dto.CreatedBy,
	}
	date := dto.Date.UTC().Format(dateLayout)
	now := time.Now().UTC()

	admitted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemQuery := tx
		if tx.Dialector.Name() == "postgres" {
			itemQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var item models.InventoryItem
		if err := itemQuery.Where("id = ?", dto.ItemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var reserved int64
		if err := tx.Model(&models.InventoryReservation{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("item_id = ? AND reserved_on = ? AND cancelled_at IS NULL", dto.ItemID, date).
			Scan(&reserved).Error; err != nil {
			return err
		}
		if item.TotalQuantity-reserved < dto.Quantity {
			return nil
		}

		if err := tx.Exec(`
			INSERT INTO inventory_reservations (id, item_id, event_id, quantity, reserved_on, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			reservation.ID, reservation.ItemID, reservation.EventID, reservation.Quantity, date, reservation.CreatedBy, now,
		).Error; err != nil {
			return err
		}
		admitted = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !admitted {
		return nil, false, nil
	}
	reservation.ReservedOn = dto.Date
	reservation.CreatedAt = now
	return reservation, true, nil
}

// CancelReservation stamps cancelled_at on one active reservation and
// reports whether a row was affected.
func (r *Repository) CancelReservation(ctx context.Context, itemID, reservationID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("id = ? AND item_id = ? AND cancelled_at IS NULL", reservationID, itemID).
		Update("cancelled_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
