package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Task is a unit of work, optionally linked to an event.
type Task struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventID     *uuid.UUID       `gorm:"column:event_id;type:uuid;index"`
	Title       string           `gorm:"column:title;not null"`
	Description *string          `gorm:"column:description"`
	Status      enums.TaskStatus `gorm:"column:status;type:text;not null;default:'NotStarted'"`
	Progress    int              `gorm:"column:progress;not null;default:0"`
	AssigneeID  *uuid.UUID       `gorm:"column:assignee_id;type:uuid"`
	DueDate     *time.Time       `gorm:"column:due_date"`
	CreatedBy   uuid.UUID        `gorm:"column:created_by;type:uuid;not null"`
	Subtasks    []Subtask        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// Subtask is a checklist entry belonging to a task.
type Subtask struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TaskID    uuid.UUID `gorm:"column:task_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Done      bool      `gorm:"column:done;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
