package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plannerhq/eventra-backend/pkg/enums"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/pagination"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{UserRepo: repo})
	require.NoError(t, err)
	return svc, repo
}

func seedUser(t *testing.T, repo *Repository, email, first, last string) *UserDTO {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    first,
		LastName:     last,
		Role:         "team-member",
	})
	require.NoError(t, err)
	return FromModel(user)
}

func TestGetUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc, repo := newTestService(t, db)
	seeded := seedUser(t, repo, "ana@example.com", "Ana", "Ortiz")

	got, err := svc.GetUser(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana", got.FirstName)

	_, err = svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListUsersSearchAndPaging(t *testing.T) {
	db := setupUsersTestDB(t)
	svc, repo := newTestService(t, db)
	seedUser(t, repo, "ana@example.com", "Ana", "Ortiz")
	seedUser(t, repo, "bram@example.com", "Bram", "Visser")
	seedUser(t, repo, "carla@example.com", "Carla", "Ortiz")

	all, meta, err := svc.ListUsers(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	ortiz, meta, err := svc.ListUsers(context.Background(), pagination.Params{Search: "ortiz"})
	require.NoError(t, err)
	assert.Len(t, ortiz, 2)
	assert.Equal(t, int64(2), meta.Total)
}

func TestUpdateUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc, repo := newTestService(t, db)
	seeded := seedUser(t, repo, "ana@example.com", "Ana", "Ortiz")

	newFirst := "Anabel"
	updated, err := svc.UpdateUser(context.Background(), seeded.ID, UpdateUserDTO{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Anabel", updated.FirstName)
	assert.Equal(t, "Ortiz", updated.LastName)

	badRole := enums.UserRole("ghost")
	_, err = svc.UpdateUser(context.Background(), seeded.ID, UpdateUserDTO{Role: &badRole})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc, repo := newTestService(t, db)
	seeded := seedUser(t, repo, "ana@example.com", "Ana", "Ortiz")

	require.NoError(t, svc.DeleteUser(context.Background(), seeded.ID))

	err := svc.DeleteUser(context.Background(), seeded.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
