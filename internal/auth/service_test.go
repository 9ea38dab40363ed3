package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/internal/users"
	pkgAuth "github.com/plannerhq/eventra-backend/pkg/auth"
	"github.com/plannerhq/eventra-backend/pkg/auth/session"
	"github.com/plannerhq/eventra-backend/pkg/config"
	"github.com/plannerhq/eventra-backend/pkg/db/models"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if user, ok := s.byID[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

type stubSessions struct {
	tokens  map[string]string
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := fmt.Sprintf("refresh-%s", accessID)
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newID := session.NewAccessID()
	token := fmt.Sprintf("refresh-%s", newID)
	s.tokens[newID] = token
	return newID, token, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "eventra",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 120,
	}
}

func newTestAuthService(t *testing.T) (Service, *stubUserRepo, *stubSessions) {
	t.Helper()
	repo := newStubUserRepo()
	sessions := newStubSessions()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	require.NoError(t, err)
	return svc, repo, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ana",
		LastName:  "Ortiz",
		Email:     "Ana@Example.com",
		Password:  "correct-horse",
		Role:      "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", registered.Email)
	assert.Equal(t, enums.UserRoleManager, registered.Role)
	require.NotNil(t, repo.byEmail["ana@example.com"])

	resp, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.NotNil(t, resp.User.LastLoginAt)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleManager, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Ortiz", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Dupe", Email: "ana@example.com", Password: "other-pass",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLoginRejectsBadPasswordAndInactive(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Ortiz", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	repo.byEmail["ana@example.com"].IsActive = false
	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Ortiz", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the old pair must be dead after rotation
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Len(t, sessions.tokens, 1)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Ortiz", Email: "ana@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	assert.Contains(t, sessions.revoked, claims.ID)
}
