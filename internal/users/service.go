package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	UserRepo *Repository
}

// Service exposes business rules for user management.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, pagination.Meta, error)
	UpdateUser(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type service struct {
	userRepo *Repository
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{userRepo: params.UserRepo}, nil
}

// GetUser loads a single user profile.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// ListUsers returns a paginated, searchable user directory.
func (s *service) ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, pagination.Meta, error) {
	rows, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, pagination.NewMeta(total, params), nil
}

// UpdateUser applies profile changes and returns the fresh record.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if dto.Role != nil && !dto.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user role").WithDetails(map[string]any{"role": string(*dto.Role)})
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if err := s.userRepo.Update(ctx, id, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return FromModel(user), nil
}

// DeleteUser removes the user. Admin accounts cannot delete themselves here;
// that rule lives at the controller where the actor is known.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return s.userRepo.Delete(ctx, id)
}

// ValidRoleOrDefault normalizes an optional role input, defaulting to team member.
func ValidRoleOrDefault(raw string) (enums.UserRole, error) {
	if raw == "" {
		return enums.UserRoleTeamMember, nil
	}
	role, err := enums.ParseUserRole(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user role")
	}
	return role, nil
}
