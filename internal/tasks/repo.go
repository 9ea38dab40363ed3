package tasks

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
)

// Repository exposes task persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tasks repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new task and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateTaskDTO) (*models.Task, error) {
	task := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// FindByID loads a task with its subtasks.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns a page of tasks matching the filter. Subtasks are not
// loaded on list queries.
func (r *Repository) List(ctx context.Context, filter ListTasksFilter) ([]models.Task, int64, error) {
	n := filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if s := strings.TrimSpace(n.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ?", like)
	}
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Task
	if err := query.
		Order("created_at DESC").
		Offset(n.Offset()).
		Limit(n.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the provided mutable fields to the task row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateTaskDTO) error {
	updates := map[string]any{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.Progress != nil {
		updates["progress"] = *dto.Progress
	}
	if dto.AssigneeID != nil {
		updates["assignee_id"] = *dto.AssigneeID
	}
	if dto.DueDate != nil {
		updates["due_date"] = *dto.DueDate
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the task row and its subtasks.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Subtask{}, "task_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// CreateSubtask appends a checklist entry to the task.
func (r *Repository) CreateSubtask(ctx context.Context, taskID uuid.UUID, title string) (*models.Subtask, error) {
	subtask := &models.Subtask{
		ID:     uuid.New(),
		TaskID: taskID,
		Title:  title,
	}
	if err := r.db.WithContext(ctx).Create(subtask).Error; err != nil {
		return nil, err
	}
	return subtask, nil
}

// FindSubtask loads one subtask scoped to its parent task.
func (r *Repository) FindSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := r.db.WithContext(ctx).
		First(&subtask, "id = ? AND task_id = ?", subtaskID, taskID).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// SetSubtaskDone flips the done flag on a subtask.
func (r *Repository) SetSubtaskDone(ctx context.Context, subtaskID uuid.UUID, done bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Subtask{}).
		Where("id = ?", subtaskID).
		Update("done", done).Error
}

// DeleteSubtask removes one subtask row.
func (r *Repository) DeleteSubtask(ctx context.Context, subtaskID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Subtask{}, "id = ?", subtaskID).Error
}

// CountsByStatus aggregates task counts per status.
func (r *Repository) CountsByStatus(ctx context.Context) (map[enums.TaskStatus]int64, error) {
	var rows []struct {
		Status enums.TaskStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[enums.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
