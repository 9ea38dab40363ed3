package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// ItemDTO is the transport shape for an inventory item and its active
// reservation ledger.
type ItemDTO struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   *string             `json:"description,omitempty"`
	Category      *string             `json:"category,omitempty"`
	Condition     enums.ItemCondition `json:"condition"`
	TotalQuantity int64               `json:"total_quantity"`
	UnitCost      decimal.Decimal     `json:"unit_cost"`
	Variations    []string            `json:"variations"`
	Images        []string            `json:"images"`
	CreatedBy     uuid.UUID           `json:"created_by"`
	Reservations  []ReservationDTO    `json:"reservations"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ReservationDTO is one ledger entry.
type ReservationDTO struct {
	ID          uuid.UUID  `json:"id"`
	ItemID      uuid.UUID  `json:"item_id"`
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	Quantity    int64      `json:"quantity"`
	ReservedOn  string     `json:"reserved_on"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateItemDTO holds the fields accepted when adding an item.
type CreateItemDTO struct {
	Name          string              `json:"name" validate:"required"`
	Description   *string             `json:"description,omitempty"`
	Category      *string             `json:"category,omitempty"`
	Condition     enums.ItemCondition `json:"condition,omitempty"`
	TotalQuantity int64               `json:"total_quantity" validate:"min=0"`
	UnitCost      decimal.Decimal     `json:"unit_cost,omitempty"`
	Variations    []string            `json:"variations,omitempty"`
	Images        []string            `json:"images,omitempty"`
	CreatedBy     uuid.UUID           `json:"-"`
}

// UpdateItemDTO carries the mutable item fields. Nil means "leave as is".
type UpdateItemDTO struct {
	Name          *string              `json:"name,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Category      *string              `json:"category,omitempty"`
	Condition     *enums.ItemCondition `json:"condition,omitempty"`
	TotalQuantity *int64               `json:"total_quantity,omitempty"`
	UnitCost      *decimal.Decimal     `json:"unit_cost,omitempty"`
	Variations    *[]string            `json:"variations,omitempty"`
	Images        *[]string            `json:"images,omitempty"`
}

// ReserveDTO is a reservation admission request.
type ReserveDTO struct {
	ItemID    uuid.UUID
	EventID   *uuid.UUID
	Date      time.Time
	Quantity  int64
	CreatedBy uuid.UUID
}

// ListItemsFilter combines pagination with the optional list filters.
type ListItemsFilter struct {
	pagination.Params
	Condition *enums.ItemCondition
}

func FromModel(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}

	reservations := make([]ReservationDTO, 0, len(item.Reservations))
	for i := range item.Reservations {
		reservations = append(reservations, *reservationFromModel(&item.Reservations[i]))
	}

	return &ItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		Condition:     item.Condition,
		TotalQuantity: item.TotalQuantity,
		UnitCost:      item.UnitCost,
		Variations:    append([]string{}, item.Variations...),
		Images:        append([]string{}, item.Images...),
		CreatedBy:     item.CreatedBy,
		Reservations:  reservations,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func reservationFromModel(r *models.InventoryReservation) *ReservationDTO {
	return &ReservationDTO{
		ID:          r.ID,
		ItemID:      r.ItemID,
		EventID:     r.EventID,
		Quantity:    r.Quantity,
		ReservedOn:  r.ReservedOn.UTC().Format("2006-01-02"),
		CancelledAt: r.CancelledAt,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

func (c CreateItemDTO) ToModel() *models.InventoryItem {
	condition := c.Condition
	if condition == "" {
		condition = enums.ItemConditionNew
	}
	variations := c.Variations
	if variations == nil {
		variations = []string{}
	}
	images := c.Images
	if images == nil {
		images = []string{}
	}

	return &models.InventoryItem{
		ID:            uuid.New(),
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		Condition:     condition,
		TotalQuantity: c.TotalQuantity,
		UnitCost:      c.UnitCost,
		Variations:    pq.StringArray(variations),
		Images:        pq.StringArray(images),
		CreatedBy:     c.CreatedBy,
	}
}
