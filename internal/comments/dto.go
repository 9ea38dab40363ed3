package comments

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
)

// CommentDTO is the transport shape for a comment; top-level comments
// carry their replies inline.
type CommentDTO struct {
	ID              uuid.UUID    `json:"id"`
	TaskID          uuid.UUID    `json:"task_id"`
	AuthorID        uuid.UUID    `json:"author_id"`
	ParentCommentID *uuid.UUID   `json:"parent_comment_id,omitempty"`
	Body            string       `json:"body"`
	Replies         []CommentDTO `json:"replies,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// CreateCommentDTO holds the fields accepted when posting a comment.
type CreateCommentDTO struct {
	TaskID          uuid.UUID  `json:"task_id" validate:"required"`
	AuthorID        uuid.UUID  `json:"-"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
	Body            string     `json:"body" validate:"required"`
}

func FromModel(c *models.Comment) *CommentDTO {
	if c == nil {
		return nil
	}

	return &CommentDTO{
		ID:              c.ID,
		TaskID:          c.TaskID,
		AuthorID:        c.AuthorID,
		ParentCommentID: c.ParentCommentID,
		Body:            c.Body,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (c CreateCommentDTO) ToModel() *models.Comment {
	return &models.Comment{
		ID:              uuid.New(),
		TaskID:          c.TaskID,
		AuthorID:        c.AuthorID,
		ParentCommentID: c.ParentCommentID,
		Body:            c.Body,
	}
}
