// internal/repository/task_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/taskmanager/internal/database"
	"github.com/gurkanbulca/taskmanager/internal/models"
)

var taskColumns = []string{
	database.ColumnID,
	database.ColumnTitle,
	database.ColumnDescription,
	database.ColumnStatus,
	database.ColumnPriority,
	database.ColumnDueDate,
	database.ColumnOwnerID,
}

// TaskStore is the owner-scoped task persistence contract.
type TaskStore interface {
	Create(ctx context.Context, ownerID int64, input *models.TaskInput) (*models.Task, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Task, error)
	List(ctx context.Context, ownerID int64, q TaskQuery) ([]*models.Task, error)
	Update(ctx context.Context, ownerID, id int64, patch *models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type TaskRepository struct {
	db      *sqlx.DB
	dialect string
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{
		db:      db,
		dialect: db.DriverName(),
	}
}

func (r *TaskRepository) Create(ctx context.Context, ownerID int64, input *models.TaskInput) (*models.Task, error) {
	t := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     utcPtr(input.DueDate),
		OwnerID:     ownerID,
	}

	query := r.db.Rebind(`INSERT INTO tasks (title, description, status, priority, due_date, owner_id)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.DueDate, t.OwnerID,
	).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return t, nil
}

// Get returns the task only if ownerID owns it.
func (r *TaskRepository) Get(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(taskColumns...).
		From(entsql.Table(database.TasksTable)).
		Where(ownedBy(ownerID, id)).
		Query()

	var t models.Task
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return &t, nil
}

// List runs the task query engine over the owner's tasks.
func (r *TaskRepository) List(ctx context.Context, ownerID int64, q TaskQuery) ([]*models.Task, error) {
	selector, err := q.selector(r.dialect, ownerID)
	if err != nil {
		return nil, err
	}
	query, args := selector.Query()

	tasks := []*models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the supplied fields of patch into the owner's task.
func (r *TaskRepository) Update(ctx context.Context, ownerID, id int64, patch *models.TaskPatch) (*models.Task, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, ownerID, id)
	}

	update := entsql.Dialect(r.dialect).Update(database.TasksTable)
	applyPatch(update, patch)
	query, args := update.Where(ownedBy(ownerID, id)).Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return r.Get(ctx, ownerID, id)
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query, args := entsql.Dialect(r.dialect).
		Delete(database.TasksTable).
		Where(ownedBy(ownerID, id)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(res)
}

// applyPatch sets exactly the fields present in patch. A null clears the
// nullable columns; callers reject null for the required ones.
func applyPatch(u *entsql.UpdateBuilder, patch *models.TaskPatch) {
	if patch.Title.Set {
		u.Set(database.ColumnTitle, patch.Title.Value)
	}
	if patch.Description.Set {
		if patch.Description.Valid {
			u.Set(database.ColumnDescription, patch.Description.Value)
		} else {
			u.SetNull(database.ColumnDescription)
		}
	}
	if patch.Status.Set {
		u.Set(database.ColumnStatus, string(patch.Status.Value))
	}
	if patch.Priority.Set {
		u.Set(database.ColumnPriority, string(patch.Priority.Value))
	}
	if patch.DueDate.Set {
		if patch.DueDate.Valid {
			u.Set(database.ColumnDueDate, patch.DueDate.Value.UTC())
		} else {
			u.SetNull(database.ColumnDueDate)
		}
	}
}

func ownedBy(ownerID, id int64) *entsql.Predicate {
	return entsql.And(
		entsql.EQ(database.ColumnID, id),
		entsql.EQ(database.ColumnOwnerID, ownerID),
	)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
