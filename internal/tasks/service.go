package tasks

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// Service exposes business rules for task management.
type Service interface {
	CreateTask(ctx context.Context, dto CreateTaskDTO) (*TaskDTO, error)
	GetTask(ctx context.Context, id uuid.UUID) (*TaskDTO, error)
	ListTasks(ctx context.Context, filter ListTasksFilter) ([]TaskDTO, pagination.Meta, error)
	UpdateTask(ctx context.Context, id uuid.UUID, dto UpdateTaskDTO) (*TaskDTO, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	AddSubtask(ctx context.Context, taskID uuid.UUID, title string) (*TaskDTO, error)
	SetSubtaskDone(ctx context.Context, taskID, subtaskID uuid.UUID, done bool) (*TaskDTO, error)
	RemoveSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) error
	CountsByStatus(ctx context.Context) ([]StatusCount, error)
}

// ServiceParams groups dependencies for the tasks service.
type ServiceParams struct {
	TaskRepo *Repository
}

type service struct {
	taskRepo *Repository
}

// NewService builds a tasks service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TaskRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task repo is required")
	}
	return &service{taskRepo: params.TaskRepo}, nil
}

// CreateTask persists a new task in the NotStarted state.
func (s *service) CreateTask(ctx context.Context, dto CreateTaskDTO) (*TaskDTO, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task title is required")
	}

	task, err := s.taskRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create task")
	}
	return FromModel(task), nil
}

// GetTask loads a single task with its subtasks.
func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*TaskDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	return s.loadTask(ctx, id)
}

// ListTasks returns a filtered, paginated page of tasks.
func (s *service) ListTasks(ctx context.Context, filter ListTasksFilter) ([]TaskDTO, pagination.Meta, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid task status filter")
	}
	rows, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	out := make([]TaskDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, filter.Params), nil
}

// UpdateTask applies changes and returns the fresh record. Marking a
// task Completed forces progress to 100.
func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, dto UpdateTaskDTO) (*TaskDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	if dto.Status != nil && !dto.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid task status").WithDetails(map[string]any{"status": string(*dto.Status)})
	}
	if dto.Progress != nil && (*dto.Progress < 0 || *dto.Progress > 100) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "progress must be between 0 and 100")
	}

	if _, err := s.taskRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}

	if dto.Status != nil && *dto.Status == enums.TaskStatusCompleted && dto.Progress == nil {
		full := 100
		dto.Progress = &full
	}

	if err := s.taskRepo.Update(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task")
	}
	return s.loadTask(ctx, id)
}

// DeleteTask removes the task and its subtasks. Comments on the task
// survive as orphaned rows.
func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	if _, err := s.taskRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return nil
}

// AddSubtask appends a checklist entry and returns the updated task.
func (s *service) AddSubtask(ctx context.Context, taskID uuid.UUID, title string) (*TaskDTO, error) {
	if taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtask title is required")
	}

	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}

	if _, err := s.taskRepo.CreateSubtask(ctx, taskID, title); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subtask")
	}
	return s.loadTask(ctx, taskID)
}

// SetSubtaskDone flips a checklist entry and returns the updated task.
func (s *service) SetSubtaskDone(ctx context.Context, taskID, subtaskID uuid.UUID, done bool) (*TaskDTO, error) {
	if taskID == uuid.Nil || subtaskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task and subtask ids are required")
	}

	if _, err := s.taskRepo.FindSubtask(ctx, taskID, subtaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subtask not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subtask")
	}

	if err := s.taskRepo.SetSubtaskDone(ctx, subtaskID, done); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subtask")
	}
	return s.loadTask(ctx, taskID)
}

// RemoveSubtask deletes one checklist entry.
func (s *service) RemoveSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) error {
	if taskID == uuid.Nil || subtaskID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "task and subtask ids are required")
	}

	if _, err := s.taskRepo.FindSubtask(ctx, taskID, subtaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subtask not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subtask")
	}

	if err := s.taskRepo.DeleteSubtask(ctx, subtaskID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subtask")
	}
	return nil
}

// CountsByStatus returns a zero-filled count for every known status.
func (s *service) CountsByStatus(ctx context.Context) ([]StatusCount, error) {
	counts, err := s.taskRepo.CountsByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count tasks")
	}

	out := make([]StatusCount, 0, len(enums.AllTaskStatuses()))
	for _, status := range enums.AllTaskStatuses() {
		out = append(out, StatusCount{Status: status, Count: counts[status]})
	}
	return out, nil
}

func (s *service) loadTask(ctx context.Context, id uuid.UUID) (*TaskDTO, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	return FromModel(task), nil
}
