package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// NotificationDTO is the transport shape for an in-app notification.
type NotificationDTO struct {
	ID         uuid.UUID                `json:"id"`
	UserID     uuid.UUID                `json:"user_id"`
	SourceType enums.NotificationSource `json:"source_type"`
	SourceID   *uuid.UUID               `json:"source_id,omitempty"`
	Title      string                   `json:"title"`
	Message    string                   `json:"message"`
	IsRead     bool                     `json:"is_read"`
	ReadAt     *time.Time               `json:"read_at,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

// CreateNotificationDTO holds the fields sibling services supply when
// raising a notification.
type CreateNotificationDTO struct {
	UserID     uuid.UUID
	SourceType enums.NotificationSource
	SourceID   *uuid.UUID
	Title      string
	Message    string
}

func FromModel(n *models.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}

	return &NotificationDTO{
		ID:         n.ID,
		UserID:     n.UserID,
		SourceType: n.SourceType,
		SourceID:   n.SourceID,
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.ReadAt != nil,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func (c CreateNotificationDTO) ToModel() *models.Notification {
	return &models.Notification{
		ID:         uuid.New(),
		UserID:     c.UserID,
		SourceType: c.SourceType,
		SourceID:   c.SourceID,
		Title:      c.Title,
		Message:    c.Message,
	}
}
