package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	dbtypes "github.com/plannerhq/eventra-backend/pkg/db/types"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// EventDTO is the transport shape for a single event.
type EventDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Location      *string           `json:"location,omitempty"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Status        enums.EventStatus `json:"status"`
	ClientID      *uuid.UUID        `json:"client_id,omitempty"`
	ManagerID     *uuid.UUID        `json:"manager_id,omitempty"`
	TeamMemberIDs []uuid.UUID       `json:"team_member_ids"`
	CreatedBy     uuid.UUID         `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateEventDTO holds the fields accepted when creating an event.
type CreateEventDTO struct {
	Name          string      `json:"name" validate:"required"`
	Description   *string     `json:"description,omitempty"`
	Location      *string     `json:"location,omitempty"`
	StartDate     time.Time   `json:"start_date" validate:"required"`
	EndDate       time.Time   `json:"end_date" validate:"required"`
	ClientID      *uuid.UUID  `json:"client_id,omitempty"`
	ManagerID     *uuid.UUID  `json:"manager_id,omitempty"`
	TeamMemberIDs []uuid.UUID `json:"team_member_ids,omitempty"`
	CreatedBy     uuid.UUID   `json:"-"`
}

// UpdateEventDTO carries the mutable event fields. Nil means "leave as is".
type UpdateEventDTO struct {
	Name          *string            `json:"name,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Location      *string            `json:"location,omitempty"`
	StartDate     *time.Time         `json:"start_date,omitempty"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	Status        *enums.EventStatus `json:"status,omitempty"`
	ClientID      *uuid.UUID         `json:"client_id,omitempty"`
	ManagerID     *uuid.UUID         `json:"manager_id,omitempty"`
	TeamMemberIDs *[]uuid.UUID       `json:"team_member_ids,omitempty"`
}

// ListEventsFilter combines pagination with the optional list filters.
type ListEventsFilter struct {
	pagination.Params
	ClientID *uuid.UUID
	Status   *enums.EventStatus
}

// CalendarDay groups the events running on a single day of the month.
type CalendarDay struct {
	Date   string     `json:"date"`
	Events []EventDTO `json:"events"`
}

// StatusCount pairs an event status with how many events hold it.
type StatusCount struct {
	Status enums.EventStatus `json:"status"`
	Count  int64             `json:"count"`
}

func FromModel(e *models.Event) *EventDTO {
	if e == nil {
		return nil
	}

	return &EventDTO{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Location:      e.Location,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		Status:        e.Status,
		ClientID:      e.ClientID,
		ManagerID:     e.ManagerID,
		TeamMemberIDs: append([]uuid.UUID{}, e.TeamMemberIDs...),
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (c CreateEventDTO) ToModel() *models.Event {
	teamMembers := dbtypes.UUIDArray(c.TeamMemberIDs)
	if teamMembers == nil {
		teamMembers = dbtypes.UUIDArray{}
	}
	return &models.Event{
		ID:            uuid.New(),
		Name:          c.Name,
		Description:   c.Description,
		Location:      c.Location,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Status:        enums.EventStatusDraft,
		ClientID:      c.ClientID,
		ManagerID:     c.ManagerID,
		TeamMemberIDs: teamMembers,
		CreatedBy:     c.CreatedBy,
	}
}
