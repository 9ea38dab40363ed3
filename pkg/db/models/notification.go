package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to users.
type Notification struct {
	ID         uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	SourceType enums.NotificationSource `gorm:"column:source_type;type:text;not null"`
	SourceID   *uuid.UUID               `gorm:"column:source_id;type:uuid"`
	Title      string                   `gorm:"type:text;not null"`
	Message    string                   `gorm:"type:text;not null"`
	ReadAt     *time.Time               `gorm:"column:read_at"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
}
