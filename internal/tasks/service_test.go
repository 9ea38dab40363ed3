package tasks

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

func setupTasksTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:tasks_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  event_id TEXT,
  title TEXT NOT NULL,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'NotStarted',
  progress INTEGER NOT NULL DEFAULT 0,
  assignee_id TEXT,
  due_date DATETIME,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS subtasks (
  id TEXT PRIMARY KEY,
  task_id TEXT NOT NULL,
  title TEXT NOT NULL,
  done INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{TaskRepo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func seedTask(t *testing.T, svc Service, title string, eventID *uuid.UUID) *TaskDTO {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), CreateTaskDTO{
		EventID:   eventID,
		Title:     title,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, CreateTaskDTO{Title: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	created := seedTask(t, svc, "Book venue", nil)
	assert.Equal(t, enums.TaskStatusNotStarted, created.Status)
	assert.Equal(t, 0, created.Progress)

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book venue", got.Title)
	assert.Empty(t, got.Subtasks)
}

func TestListTasksFilters(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	eventID := uuid.New()
	seedTask(t, svc, "Book venue", &eventID)
	seedTask(t, svc, "Book catering", &eventID)
	other := seedTask(t, svc, "Send invites", nil)

	delayed := enums.TaskStatusDelayed
	_, err := svc.UpdateTask(ctx, other.ID, UpdateTaskDTO{Status: &delayed})
	require.NoError(t, err)

	booked, meta, err := svc.ListTasks(ctx, ListTasksFilter{Params: pagination.Params{Search: "book"}})
	require.NoError(t, err)
	assert.Len(t, booked, 2)
	assert.Equal(t, int64(2), meta.Total)

	byEvent, _, err := svc.ListTasks(ctx, ListTasksFilter{EventID: &eventID})
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	delayedOnly, _, err := svc.ListTasks(ctx, ListTasksFilter{Status: &delayed})
	require.NoError(t, err)
	require.Len(t, delayedOnly, 1)
	assert.Equal(t, "Send invites", delayedOnly[0].Title)
}

func TestUpdateTaskRules(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedTask(t, svc, "Book venue", nil)

	badProgress := 150
	_, err := svc.UpdateTask(ctx, created.ID, UpdateTaskDTO{Progress: &badProgress})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	completed := enums.TaskStatusCompleted
	updated, err := svc.UpdateTask(ctx, created.ID, UpdateTaskDTO{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, enums.TaskStatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)

	_, err = svc.UpdateTask(ctx, uuid.New(), UpdateTaskDTO{Status: &completed})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSubtaskLifecycle(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedTask(t, svc, "Book venue", nil)

	withSubtask, err := svc.AddSubtask(ctx, created.ID, "Call vendor")
	require.NoError(t, err)
	require.Len(t, withSubtask.Subtasks, 1)
	assert.False(t, withSubtask.Subtasks[0].Done)

	toggled, err := svc.SetSubtaskDone(ctx, created.ID, withSubtask.Subtasks[0].ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Subtasks[0].Done)

	// a subtask is only addressable through its own task
	_, err = svc.SetSubtaskDone(ctx, uuid.New(), withSubtask.Subtasks[0].ID, false)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.RemoveSubtask(ctx, created.ID, withSubtask.Subtasks[0].ID))
	reloaded, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Subtasks)
}

func TestDeleteTaskRemovesSubtasks(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	created := seedTask(t, svc, "Book venue", nil)

	_, err := svc.AddSubtask(ctx, created.ID, "Call vendor")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))

	var count int64
	require.NoError(t, db.Table("subtasks").Where("task_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err = svc.DeleteTask(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestTaskCountsByStatusZeroFills(t *testing.T) {
	db := setupTasksTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedTask(t, svc, "One", nil)
	second := seedTask(t, svc, "Two", nil)
	inProgress := enums.TaskStatusInProgress
	_, err := svc.UpdateTask(ctx, second.ID, UpdateTaskDTO{Status: &inProgress})
	require.NoError(t, err)

	counts, err := svc.CountsByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(enums.AllTaskStatuses()))

	byStatus := map[enums.TaskStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(1), byStatus[enums.TaskStatusNotStarted])
	assert.Equal(t, int64(1), byStatus[enums.TaskStatusInProgress])
	assert.Equal(t, int64(0), byStatus[enums.TaskStatusCancelled])
}
