package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/config"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/logger"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// Service exposes the inventory catalog and the reservation ledger.
type Service interface {
	CreateItem(ctx context.Context, dto CreateItemDTO) (*ItemDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, filter ListItemsFilter) ([]ItemDTO, pagination.Meta, error)
	UpdateItem(ctx context.Context, id uuid.UUID, dto UpdateItemDTO) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	CheckAvailability(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error)
	Reserve(ctx context.Context, dto ReserveDTO) (*ItemDTO, error)
	CancelReservation(ctx context.Context, itemID, reservationID uuid.UUID) error
}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	ItemRepo     *Repository
	Features     config.FeatureFlagsConfig
	Reservations config.ReservationConfig
	Logger       *logger.Logger
}

type service struct {
	itemRepo         *Repository
	cancelEnabled    bool
	admissionRetries int
	logg             *logger.Logger
}

// NewService builds an inventory service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ItemRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	retries := params.Reservations.AdmissionRetries
	if retries < 1 {
		retries = 1
	}
	return &service{
		itemRepo:         params.ItemRepo,
		cancelEnabled:    params.Features.ReservationCancel,
		admissionRetries: retries,
		logg:             params.Logger,
	}, nil
}

// CreateItem adds an item to the catalog.
func (s *service) CreateItem(ctx context.Context, dto CreateItemDTO) (*ItemDTO, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if dto.TotalQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total quantity must not be negative")
	}
	if dto.Condition != "" && !dto.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item condition").WithDetails(map[string]any{"condition": string(dto.Condition)})
	}
	if dto.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
	}

	item, err := s.itemRepo.CreateItem(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return FromModel(item), nil
}

// GetItem loads an item with its full reservation ledger.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return s.loadItem(ctx, id)
}

// ListItems returns a filtered, paginated page of items.
func (s *service) ListItems(ctx context.Context, filter ListItemsFilter) ([]ItemDTO, pagination.Meta, error) {
	if filter.Condition != nil && !filter.Condition.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid item condition filter")
	}
	rows, total, err := s.itemRepo.ListItems(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, filter.Params), nil
}

// UpdateItem applies metadata changes. The total quantity may not drop
// below the busiest day already on the ledger.
func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, dto UpdateItemDTO) (*ItemDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if dto.Condition != nil && !dto.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item condition").WithDetails(map[string]any{"condition": string(*dto.Condition)})
	}
	if dto.UnitCost != nil && dto.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
	}

	if _, err := s.loadItem(ctx, id); err != nil {
		return nil, err
	}

	if dto.TotalQuantity != nil {
		if *dto.TotalQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total quantity must not be negative")
		}
		reserved, err := s.itemRepo.MaxActiveReservedPerDate(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect ledger")
		}
		if *dto.TotalQuantity < reserved {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "total quantity cannot drop below already reserved capacity").
				WithDetails(map[string]any{"reserved": reserved})
		}
	}

	if err := s.itemRepo.UpdateItem(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return s.loadItem(ctx, id)
}

// DeleteItem removes the item and its ledger.
func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if _, err := s.loadItem(ctx, id); err != nil {
		return err
	}
	if err := s.itemRepo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

// CheckAvailability reports how many units remain for the item on one
// calendar date. The reported value is clamped at zero even when the
// stored data is inconsistent.
func (s *service) CheckAvailability(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error) {
	if itemID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if date.IsZero() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}

	available, err := s.rawAvailability(ctx, itemID, date)
	if err != nil {
		return 0, err
	}
	if available < 0 {
		return 0, nil
	}
	return available, nil
}

// Reserve admits a reservation through the repo's locked
// check-and-append transaction. When the admission is refused but a
// recomputed availability says the request fits, a concurrent writer
// raced us; the admission is retried a bounded number of times before
// surfacing a conflict.
func (s *service) Reserve(ctx context.Context, dto ReserveDTO) (*ItemDTO, error) {
	if dto.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if dto.EventID == nil || *dto.EventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if dto.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if dto.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	for attempt := 1; attempt <= s.admissionRetries; attempt++ {
		_, admitted, err := s.itemRepo.InsertReservationIfAvailable(ctx, dto)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "admit reservation")
		}
		if admitted {
			return s.loadItem(ctx, dto.ItemID)
		}

		// zero rows: missing item, exhausted capacity, or a concurrent
		// writer changed the ledger between our statement and now
		available, err := s.rawAvailability(ctx, dto.ItemID, dto.Date)
		if err != nil {
			return nil, err
		}
		if dto.Quantity > available {
			reported := available
			if reported < 0 {
				reported = 0
			}
			return nil, pkgerrors.New(pkgerrors.CodeCapacityExceeded, "requested quantity exceeds remaining capacity").
				WithDetails(map[string]any{"available": reported})
		}
		if s.logg != nil {
			retryCtx := s.logg.WithFields(ctx, map[string]any{
				"item_id": dto.ItemID.String(),
				"attempt": attempt,
			})
			s.logg.Warn(retryCtx, "reservation admission retry")
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not admit reservation due to concurrent updates")
}

// CancelReservation stamps one active reservation as cancelled. The
// operation sits behind a feature flag and is off by default.
func (s *service) CancelReservation(ctx context.Context, itemID, reservationID uuid.UUID) error {
	if !s.cancelEnabled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "reservation cancellation is disabled")
	}
	if itemID == uuid.Nil || reservationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item and reservation ids are required")
	}

	cancelled, err := s.itemRepo.CancelReservation(ctx, itemID, reservationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel reservation")
	}
	if !cancelled {
		return pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
	}
	return nil
}

// rawAvailability computes capacity minus the active per-date total
// without clamping; admission decisions need the raw value.
func (s *service) rawAvailability(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	reserved, err := s.itemRepo.ActiveReservedSum(ctx, itemID, date)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum reservations")
	}
	return item.TotalQuantity - reserved, nil
}

func (s *service) loadItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.itemRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return FromModel(item), nil
}
