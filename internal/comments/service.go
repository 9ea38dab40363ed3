package comments

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
)

// Service exposes business rules for task comment threads.
type Service interface {
	CreateComment(ctx context.Context, dto CreateCommentDTO) (*CommentDTO, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]CommentDTO, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the comments service.
type ServiceParams struct {
	CommentRepo *Repository
}

type service struct {
	commentRepo *Repository
}

// NewService builds a comments service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CommentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment repo is required")
	}
	return &service{commentRepo: params.CommentRepo}, nil
}

// CreateComment posts a comment or a reply. Threads are one level deep:
// a reply must reference a top-level comment on the same task.
func (s *service) CreateComment(ctx context.Context, dto CreateCommentDTO) (*CommentDTO, error) {
	if dto.TaskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}
	if dto.AuthorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author id is required")
	}
	if strings.TrimSpace(dto.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment body is required")
	}

	if dto.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *dto.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "parent comment not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent comment")
		}
		if parent.TaskID != dto.TaskID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent comment belongs to a different task")
		}
		if parent.ParentCommentID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "replies to replies are not allowed")
		}
	}

	comment, err := s.commentRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}
	return FromModel(comment), nil
}

// ListByTask returns the task's thread: top-level comments newest first,
// each with its replies oldest first.
func (s *service) ListByTask(ctx context.Context, taskID uuid.UUID) ([]CommentDTO, error) {
	if taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id is required")
	}

	rows, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}

	replies := map[uuid.UUID][]CommentDTO{}
	topLevel := make([]CommentDTO, 0, len(rows))
	for i := range rows {
		dto := *FromModel(&rows[i])
		if rows[i].ParentCommentID != nil {
			parentID := *rows[i].ParentCommentID
			replies[parentID] = append(replies[parentID], dto)
			continue
		}
		topLevel = append(topLevel, dto)
	}

	seen := map[uuid.UUID]bool{}
	for i := range topLevel {
		seen[topLevel[i].ID] = true
	}
	// replies whose parent was deleted are promoted to top level
	for parentID, orphaned := range replies {
		if !seen[parentID] {
			topLevel = append(topLevel, orphaned...)
		}
	}

	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt.After(topLevel[j].CreatedAt)
	})
	for i := range topLevel {
		topLevel[i].Replies = replies[topLevel[i].ID]
	}
	return topLevel, nil
}

// DeleteComment removes one comment; replies survive as orphaned rows
// still listed under the task.
func (s *service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment id is required")
	}
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
	}
	return nil
}
