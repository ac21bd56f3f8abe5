package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/internal/testutil"
)

func setupTaskRepo(t *testing.T) (*TaskRepository, *models.User, *models.User) {
	db := testutil.SetupTestDB(t)
	return NewTaskRepository(db), createUser(t, db, "alice@x.com"), createUser(t, db, "bob@x.com")
}

func createUser(t *testing.T, db *sqlx.DB, email string) *models.User {
	u, err := NewUserRepository(db).Create(context.Background(), email, "hash")
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func newInput(title string) *models.TaskInput {
	return &models.TaskInput{
		Title:    title,
		Status:   models.DefaultStatus,
		Priority: models.DefaultPriority,
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	due := time.Date(2026, 5, 1, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	created, err := repo.Create(ctx, alice.ID, &models.TaskInput{
		Title:       "Write report",
		Description: strPtr("quarterly"),
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, alice.ID, created.OwnerID)

	got, err := repo.Get(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "quarterly", *got.Description)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate), "due date must round-trip as the same instant")
	assert.Equal(t, alice.ID, got.OwnerID)
}

func TestTaskRepository_OptionalFieldsStayNull(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice.ID, newInput("Bare"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
}

func TestTaskRepository_Isolation(t *testing.T) {
	repo, alice, bob := setupTaskRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, newInput("Alice's"))
	require.NoError(t, err)
	missingID := task.ID + 1000

	for _, id := range []int64{task.ID, missingID} {
		_, err = repo.Get(ctx, bob.ID, id)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.Update(ctx, bob.ID, id, &models.TaskPatch{Status: models.NewField(models.StatusDone)})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.Update(ctx, bob.ID, id, &models.TaskPatch{})
		assert.ErrorIs(t, err, ErrNotFound)

		err = repo.Delete(ctx, bob.ID, id)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	got, err := repo.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, got.Status, "foreign update must not touch the row")
}

func TestTaskRepository_PartialUpdate(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	task, err := repo.Create(ctx, alice.ID, &models.TaskInput{
		Title:       "Plan",
		Description: strPtr("details"),
		Status:      models.StatusTodo,
		Priority:    models.PriorityLow,
		DueDate:     &due,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, alice.ID, task.ID, &models.TaskPatch{
		Status: models.NewField(models.StatusDone),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "Plan", updated.Title)
	assert.Equal(t, models.PriorityLow, updated.Priority)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "details", *updated.Description)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
	assert.Equal(t, alice.ID, updated.OwnerID)
}

func TestTaskRepository_UpdateClearsNullableFields(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, &models.TaskInput{
		Title:       "Plan",
		Description: strPtr("details"),
		Status:      models.StatusTodo,
		Priority:    models.PriorityLow,
		DueDate:     timePtr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, alice.ID, task.ID, &models.TaskPatch{
		Title:       models.NewField("Renamed"),
		Description: models.NullField[string](),
		DueDate:     models.NullField[time.Time](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, models.PriorityLow, updated.Priority)
}

func TestTaskRepository_EmptyPatchReturnsCurrent(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, newInput("Same"))
	require.NoError(t, err)

	got, err := repo.Update(ctx, alice.ID, task.ID, &models.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
}

func TestTaskRepository_Delete(t *testing.T) {
	repo, alice, _ := setupTaskRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, alice.ID, newInput("Gone"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, alice.ID, task.ID))

	_, err = repo.Get(ctx, alice.ID, task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, alice.ID, task.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
