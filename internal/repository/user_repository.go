// internal/repository/user_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/taskmanager/internal/database"
	"github.com/gurkanbulca/taskmanager/internal/models"
)

var userColumns = []string{
	database.ColumnID,
	database.ColumnEmail,
	database.ColumnHashedPassword,
}

// UserStore is the credential store contract.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	// FindByEmail returns (nil, nil) when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserRepository struct {
	db      *sqlx.DB
	dialect string
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db:      db,
		dialect: db.DriverName(),
	}
}

// Create inserts a user. The email must not be registered yet.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	query := r.db.Rebind(`INSERT INTO users (email, hashed_password) VALUES (?, ?) RETURNING id`)

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, email, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &models.User{
		ID:             id,
		Email:          email,
		HashedPassword: passwordHash,
	}, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, entsql.EQ(database.ColumnEmail, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, entsql.EQ(database.ColumnID, id))
}

func (r *UserRepository) findOne(ctx context.Context, where *entsql.Predicate) (*models.User, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(userColumns...).
		From(entsql.Table(database.UsersTable)).
		Where(where).
		Limit(1).
		Query()

	var u models.User
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
