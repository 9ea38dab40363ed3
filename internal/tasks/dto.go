package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// TaskDTO is the transport shape for a task with its subtasks.
type TaskDTO struct {
	ID          uuid.UUID        `json:"id"`
	EventID     *uuid.UUID       `json:"event_id,omitempty"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Status      enums.TaskStatus `json:"status"`
	Progress    int              `json:"progress"`
	AssigneeID  *uuid.UUID       `json:"assignee_id,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	Subtasks    []SubtaskDTO     `json:"subtasks"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SubtaskDTO is a single checklist entry.
type SubtaskDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskDTO holds the fields accepted when creating a task.
type CreateTaskDTO struct {
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID  `json:"-"`
}

// UpdateTaskDTO carries the mutable task fields. Nil means "leave as is".
type UpdateTaskDTO struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *enums.TaskStatus `json:"status,omitempty"`
	Progress    *int              `json:"progress,omitempty"`
	AssigneeID  *uuid.UUID        `json:"assignee_id,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
}

// ListTasksFilter combines pagination with the optional list filters.
type ListTasksFilter struct {
	pagination.Params
	EventID *uuid.UUID
	Status  *enums.TaskStatus
}

// StatusCount pairs a task status with how many tasks hold it.
type StatusCount struct {
	Status enums.TaskStatus `json:"status"`
	Count  int64            `json:"count"`
}

func FromModel(task *models.Task) *TaskDTO {
	if task == nil {
		return nil
	}

	subtasks := make([]SubtaskDTO, 0, len(task.Subtasks))
	for _, st := range task.Subtasks {
		subtasks = append(subtasks, SubtaskDTO{
			ID:        st.ID,
			Title:     st.Title,
			Done:      st.Done,
			CreatedAt: st.CreatedAt,
		})
	}

	return &TaskDTO{
		ID:          task.ID,
		EventID:     task.EventID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Progress:    task.Progress,
		AssigneeID:  task.AssigneeID,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		Subtasks:    subtasks,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (c CreateTaskDTO) ToModel() *models.Task {
	return &models.Task{
		ID:          uuid.New(),
		EventID:     c.EventID,
		Title:       c.Title,
		Description: c.Description,
		Status:      enums.TaskStatusNotStarted,
		AssigneeID:  c.AssigneeID,
		DueDate:     c.DueDate,
		CreatedBy:   c.CreatedBy,
	}
}
