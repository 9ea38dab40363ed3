package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// Service exposes business rules for event management.
type Service interface {
	CreateEvent(ctx context.Context, dto CreateEventDTO) (*EventDTO, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	ListEvents(ctx context.Context, filter ListEventsFilter) ([]EventDTO, pagination.Meta, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, dto UpdateEventDTO) (*EventDTO, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	Calendar(ctx context.Context, year int, month time.Month) ([]CalendarDay, error)
	CountsByStatus(ctx context.Context) ([]StatusCount, error)
}

// ServiceParams groups dependencies for the events service.
type ServiceParams struct {
	EventRepo *Repository
}

type service struct {
	eventRepo *Repository
}

// NewService builds an events service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EventRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event repo is required")
	}
	return &service{eventRepo: params.EventRepo}, nil
}

// CreateEvent validates the date range and persists a new draft event.
func (s *service) CreateEvent(ctx context.Context, dto CreateEventDTO) (*EventDTO, error) {
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event name is required")
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}
	if dto.EndDate.Before(dto.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	event, err := s.eventRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return FromModel(event), nil
}

// GetEvent loads a single event.
func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return FromModel(event), nil
}

// ListEvents returns a filtered, paginated page of events.
func (s *service) ListEvents(ctx context.Context, filter ListEventsFilter) ([]EventDTO, pagination.Meta, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid event status filter")
	}
	rows, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	out := make([]EventDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, filter.Params), nil
}

// UpdateEvent applies changes and returns the fresh record.
func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, dto UpdateEventDTO) (*EventDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if dto.Status != nil && !dto.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event status").WithDetails(map[string]any{"status": string(*dto.Status)})
	}

	current, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	start := current.StartDate
	if dto.StartDate != nil {
		start = *dto.StartDate
	}
	end := current.EndDate
	if dto.EndDate != nil {
		end = *dto.EndDate
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	if err := s.eventRepo.Update(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event")
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload event")
	}
	return FromModel(event), nil
}

// DeleteEvent removes the event. Inventory reservations keep their weak
// event reference; they are not cleaned up here.
func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "event not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return s.eventRepo.Delete(ctx, id)
}

// Calendar returns one entry per day of the month, each holding the
// events whose date range covers that day.
func (s *service) Calendar(ctx context.Context, year int, month time.Month) ([]CalendarDay, error) {
	if year < 1970 || year > 9999 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid year")
	}
	if month < time.January || month > time.December {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid month")
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	rows, err := s.eventRepo.OverlappingRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load calendar events")
	}

	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	days := make([]CalendarDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

		entry := CalendarDay{
			Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Events: []EventDTO{},
		}
		for i := range rows {
			if !rows[i].StartDate.After(dayEnd) && !rows[i].EndDate.Before(dayStart) {
				entry.Events = append(entry.Events, *FromModel(&rows[i]))
			}
		}
		days = append(days, entry)
	}
	return days, nil
}

// CountsByStatus returns a zero-filled count for every known status.
func (s *service) CountsByStatus(ctx context.Context) ([]StatusCount, error) {
	counts, err := s.eventRepo.CountsByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count events")
	}

	out := make([]StatusCount, 0, len(enums.AllEventStatuses()))
	for _, status := range enums.AllEventStatuses() {
		out = append(out, StatusCount{Status: status, Count: counts[status]})
	}
	return out, nil
}
