package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/taskmanager/internal/testutil"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "u@x.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "u@x.com", created.Email)

	found, err := repo.FindByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.HashedPassword)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "u@x.com", byID.Email)
}

func TestUserRepository_FindByEmailAbsent(t *testing.T) {
	repo := NewUserRepository(testutil.SetupTestDB(t))

	u, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "User@X.com", "hash")
	require.NoError(t, err)

	u, err := repo.FindByEmail(ctx, "user@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "u@x.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "u@x.com", "other")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_UniqueViolationMapsToDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO users (email, hashed_password) VALUES ('u@x.com', 'h')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO users (email, hashed_password) VALUES ('u@x.com', 'h')")
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
