package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	dbtypes "github.com/plannerhq/eventra-backend/pkg/db/types"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Repository exposes event persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an events repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateEventDTO) (*models.Event, error) {
	event := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// FindByID loads an event by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns a page of events matching the filter.
func (r *Repository) List(ctx context.Context, filter ListEventsFilter) ([]models.Event, int64, error) {
	n := filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Event{})
	if s := strings.TrimSpace(n.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Event
	if err := query.
		Order("start_date ASC").
		Offset(n.Offset()).
		Limit(n.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the provided mutable fields to the event row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateEventDTO) error {
	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.ClientID != nil {
		updates["client_id"] = *dto.ClientID
	}
	if dto.ManagerID != nil {
		updates["manager_id"] = *dto.ManagerID
	}
	if dto.TeamMemberIDs != nil {
		updates["team_member_ids"] = dbtypes.UUIDArray(*dto.TeamMemberIDs)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the event row. Inventory reservations referencing the
// event are left untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error
}

// OverlappingRange returns events whose [start_date, end_date] span
// intersects the given window, ordered by start date.
func (r *Repository) OverlappingRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var rows []models.Event
	if err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountsByStatus aggregates event counts per status. Statuses with no
// rows are absent from the result.
func (r *Repository) CountsByStatus(ctx context.Context) (map[enums.EventStatus]int64, error) {
	var rows []struct {
		Status enums.EventStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[enums.EventStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
