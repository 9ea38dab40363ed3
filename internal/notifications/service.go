package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// Service exposes the in-app notification feed. Notify is called by
// sibling services; the rest serves the authenticated user.
type Service interface {
	Notify(ctx context.Context, dto CreateNotificationDTO) (*NotificationDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]NotificationDTO, pagination.Meta, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationDTO, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ServiceParams groups dependencies for the notifications service.
type ServiceParams struct {
	NotificationRepo *Repository
}

type service struct {
	notificationRepo *Repository
}

// NewService builds a notifications service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.NotificationRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification repo is required")
	}
	return &service{notificationRepo: params.NotificationRepo}, nil
}

// Notify records a notification for the target user.
func (s *service) Notify(ctx context.Context, dto CreateNotificationDTO) (*NotificationDTO, error) {
	if dto.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !dto.SourceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification source").WithDetails(map[string]any{"source_type": string(dto.SourceType)})
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification title is required")
	}

	notification, err := s.notificationRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return FromModel(notification), nil
}

// ListForUser returns the user's feed plus their unread count.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]NotificationDTO, pagination.Meta, int64, error) {
	if userID == uuid.Nil {
		return nil, pagination.Meta{}, 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, total, err := s.notificationRepo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, pagination.Meta{}, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, params), unread, nil
}

// MarkRead stamps one notification as read. Marking an already-read
// notification is a no-op.
func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationDTO, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and notification ids are required")
	}

	if _, err := s.notificationRepo.FindByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}

	if err := s.notificationRepo.MarkRead(ctx, userID, id, time.Now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}

	notification, err := s.notificationRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload notification")
	}
	return FromModel(notification), nil
}

// MarkAllRead stamps every unread notification of the user and returns
// how many were affected.
func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	affected, err := s.notificationRepo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return affected, nil
}
