package quotations

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/internal/notifications"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/logger"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// notifier raises in-app notifications for quotation status changes.
// Satisfied by the notifications service.
type notifier interface {
	Notify(ctx context.Context, dto notifications.CreateNotificationDTO) (*notifications.NotificationDTO, error)
}

// Service exposes business rules for the quotation workflow.
type Service interface {
	CreateQuotation(ctx context.Context, dto CreateQuotationDTO) (*QuotationDTO, error)
	GetQuotation(ctx context.Context, id uuid.UUID) (*QuotationDTO, error)
	ListQuotations(ctx context.Context, filter ListQuotationsFilter) ([]QuotationDTO, pagination.Meta, error)
	UpdateQuotation(ctx context.Context, id uuid.UUID, dto UpdateQuotationDTO) (*QuotationDTO, error)
	Submit(ctx context.Context, id uuid.UUID) (*QuotationDTO, error)
	Approve(ctx context.Context, id uuid.UUID) (*QuotationDTO, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*QuotationDTO, error)
	DeleteQuotation(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the quotations service.
// Notifier and Logger are optional; without them status transitions
// simply raise no notifications.
type ServiceParams struct {
	QuotationRepo *Repository
	Notifier      notifier
	Logger        *logger.Logger
}

type service struct {
	quotationRepo *Repository
	notifier      notifier
	logg          *logger.Logger
}

// NewService builds a quotations service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.QuotationRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation repo is required")
	}
	return &service{
		quotationRepo: params.QuotationRepo,
		notifier:      params.Notifier,
		logg:          params.Logger,
	}, nil
}

// CreateQuotation persists a new draft quotation.
func (s *service) CreateQuotation(ctx context.Context, dto CreateQuotationDTO) (*QuotationDTO, error) {
	if dto.EventID == uuid.Nil || dto.ClientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event and client ids are required")
	}
	if len(dto.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	if dto.TotalAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must not be negative")
	}

	quotation, err := s.quotationRepo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quotation")
	}
	return FromModel(quotation), nil
}

// GetQuotation loads a single quotation.
func (s *service) GetQuotation(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}
	return s.loadQuotation(ctx, id)
}

// ListQuotations returns a filtered, paginated page of quotations.
func (s *service) ListQuotations(ctx context.Context, filter ListQuotationsFilter) ([]QuotationDTO, pagination.Meta, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation status filter")
	}
	rows, total, err := s.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	out := make([]QuotationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, filter.Params), nil
}

// UpdateQuotation edits a quotation. Only drafts are editable.
func (s *service) UpdateQuotation(ctx context.Context, id uuid.UUID, dto UpdateQuotationDTO) (*QuotationDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}
	if dto.Items != nil && len(*dto.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	if dto.TotalAmount != nil && dto.TotalAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must not be negative")
	}

	current, err := s.loadQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != enums.QuotationStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only draft quotations can be edited").WithDetails(map[string]any{"status": string(current.Status)})
	}

	if err := s.quotationRepo.Update(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quotation")
	}
	return s.loadQuotation(ctx, id)
}

// Submit moves a draft into review.
func (s *service) Submit(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	return s.transition(ctx, id, enums.QuotationStatusDraft, enums.QuotationStatusPendingApproval, nil)
}

// Approve accepts a quotation under review.
func (s *service) Approve(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	return s.transition(ctx, id, enums.QuotationStatusPendingApproval, enums.QuotationStatusApproved, nil)
}

// Reject declines a quotation under review; a reason is mandatory.
func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*QuotationDTO, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a rejection reason is required")
	}
	return s.transition(ctx, id, enums.QuotationStatusPendingApproval, enums.QuotationStatusRejected, &reason)
}

// DeleteQuotation removes the quotation row.
func (s *service) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}
	if _, err := s.loadQuotation(ctx, id); err != nil {
		return err
	}
	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete quotation")
	}
	return nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, from, to enums.QuotationStatus, reason *string) (*QuotationDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}

	current, err := s.loadQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != from {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quotation is not in the required status").
			WithDetails(map[string]any{"status": string(current.Status), "required": string(from)})
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, to, reason); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quotation status")
	}

	updated, err := s.loadQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyTransition(ctx, updated, to, reason)
	return updated, nil
}

// notifyTransition raises a best-effort notification for the quotation
// author. A notification failure never fails the transition itself.
func (s *service) notifyTransition(ctx context.Context, quotation *QuotationDTO, to enums.QuotationStatus, reason *string) {
	if s.notifier == nil || quotation.CreatedBy == uuid.Nil {
		return
	}

	var title, message string
	switch to {
	case enums.QuotationStatusPendingApproval:
		title = "Quotation submitted"
		message = "Your quotation was submitted for approval."
	case enums.QuotationStatusApproved:
		title = "Quotation approved"
		message = "Your quotation has been approved."
	case enums.QuotationStatusRejected:
		title = "Quotation rejected"
		message = "Your quotation was rejected."
		if reason != nil && strings.TrimSpace(*reason) != "" {
			message = "Your quotation was rejected: " + strings.TrimSpace(*reason)
		}
	default:
		return
	}

	quotationID := quotation.ID
	if _, err := s.notifier.Notify(ctx, notifications.CreateNotificationDTO{
		UserID:     quotation.CreatedBy,
		SourceType: enums.NotificationSourceQuotation,
		SourceID:   &quotationID,
		Title:      title,
		Message:    message,
	}); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "quotation_id", quotationID.String()), "failed to raise quotation notification")
	}
}

func (s *service) loadQuotation(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}
	return FromModel(quotation), nil
}
