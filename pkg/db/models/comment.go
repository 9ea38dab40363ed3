package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a message on a task thread. Replies reference their parent;
// deleting a parent leaves replies in place.
type Comment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TaskID          uuid.UUID  `gorm:"column:task_id;type:uuid;not null;index"`
	AuthorID        uuid.UUID  `gorm:"column:author_id;type:uuid;not null"`
	ParentCommentID *uuid.UUID `gorm:"column:parent_comment_id;type:uuid;index"`
	Body            string     `gorm:"column:body;type:text;not null"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
