package comments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
)

// Repository exposes comment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a comments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new comment row.
func (r *Repository) Create(ctx context.Context, dto CreateCommentDTO) (*models.Comment, error) {
	comment := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// FindByID loads a comment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns every comment on a task, oldest first.
func (r *Repository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	var rows []models.Comment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes one comment row. Replies keep their parent reference
// even after the parent is gone.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}
