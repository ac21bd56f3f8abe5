// internal/service/task_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/internal/repository"
	"github.com/gurkanbulca/taskmanager/internal/testutil"
)

func setupTaskService(t *testing.T) (*TaskService, int64, int64) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepository(db)

	alice, err := users.Create(context.Background(), "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := users.Create(context.Background(), "bob@example.com", "hash")
	require.NoError(t, err)

	svc := NewTaskService(repository.NewTaskRepository(db), middleware.NewValidator(nil))
	return svc, alice.ID, bob.ID
}

func TestTaskService_CreateTask(t *testing.T) {
	svc, alice, _ := setupTaskService(t)
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, alice, CreateTaskParams{Title: "Write report"})
		require.NoError(t, err)

		assert.Equal(t, models.StatusTodo, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.Equal(t, alice, task.OwnerID)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		status := models.StatusInProgress
		priority := models.PriorityHigh
		due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))

		task, err := svc.CreateTask(ctx, alice, CreateTaskParams{
			Title:    "Ship",
			Status:   &status,
			Priority: &priority,
			DueDate:  &due,
		})
		require.NoError(t, err)

		assert.Equal(t, status, task.Status)
		assert.Equal(t, priority, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.True(t, due.Equal(*task.DueDate))
	})

	t.Run("invalid input", func(t *testing.T) {
		bad := models.Status("blocked")
		_, err := svc.CreateTask(ctx, alice, CreateTaskParams{Title: "", Status: &bad})

		var verrs middleware.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 2)
	})
}

func TestTaskService_OwnerScoping(t *testing.T) {
	svc, alice, bob := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, alice, CreateTaskParams{Title: "Private"})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, bob, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.UpdateTask(ctx, bob, task.ID, models.TaskPatch{Title: models.NewField("Stolen")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, bob, task.ID), repository.ErrNotFound)

	tasks, err := svc.ListTasks(ctx, bob, repository.NewTaskQuery())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	got, err := svc.GetTask(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestTaskService_UpdateTask(t *testing.T) {
	svc, alice, _ := setupTaskService(t)
	ctx := context.Background()

	desc := "details"
	task, err := svc.CreateTask(ctx, alice, CreateTaskParams{Title: "Draft", Description: &desc})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, alice, task.ID, models.TaskPatch{Status: models.NewField(models.StatusDone)})
		require.NoError(t, err)

		assert.Equal(t, models.StatusDone, updated.Status)
		assert.Equal(t, "Draft", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "details", *updated.Description)
	})

	t.Run("null title rejected", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, alice, task.ID, models.TaskPatch{Title: models.NullField[string]()})

		var verrs middleware.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})

	t.Run("null description clears", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, alice, task.ID, models.TaskPatch{Description: models.NullField[string]()})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})
}

func TestTaskService_ListTasks_InvalidQuery(t *testing.T) {
	svc, alice, _ := setupTaskService(t)

	q := repository.NewTaskQuery()
	q.Sort = "owner_id"
	_, err := svc.ListTasks(context.Background(), alice, q)
	assert.ErrorIs(t, err, repository.ErrInvalidSort)

	q = repository.NewTaskQuery()
	q.Limit = 101
	_, err = svc.ListTasks(context.Background(), alice, q)
	assert.ErrorIs(t, err, repository.ErrInvalidPagination)
}
