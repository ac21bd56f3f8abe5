// internal/repository/task_query.go
package repository

import (
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/gurkanbulca/taskmanager/internal/database"
	"github.com/gurkanbulca/taskmanager/internal/models"
)

// Pagination bounds and defaults for task listings.
const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100
	DefaultSort  = database.ColumnID
)

// sortable maps the public sort names to columns.
var sortable = map[string]string{
	"id":       database.ColumnID,
	"title":    database.ColumnTitle,
	"status":   database.ColumnStatus,
	"priority": database.ColumnPriority,
	"due_date": database.ColumnDueDate,
}

// TaskQuery describes one page of an owner's task listing. Nil filters are
// not applied.
type TaskQuery struct {
	Status    *models.Status
	Priority  *models.Priority
	DueBefore *time.Time
	// Sort is a field name, optionally prefixed with "-" for descending.
	Sort   string
	Limit  int
	Offset int
}

// NewTaskQuery returns a query with the listing defaults.
func NewTaskQuery() TaskQuery {
	return TaskQuery{Sort: DefaultSort, Limit: DefaultLimit}
}

// Validate checks sort and pagination. Filter values are not validated;
// unknown values simply match nothing.
func (q TaskQuery) Validate() error {
	if _, _, err := q.sortColumn(); err != nil {
		return err
	}
	if q.Limit < MinLimit || q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between %d and %d", ErrInvalidPagination, MinLimit, MaxLimit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidPagination)
	}
	return nil
}

func (q TaskQuery) sortColumn() (column string, desc bool, err error) {
	field := q.Sort
	if field == "" {
		field = DefaultSort
	}
	if strings.HasPrefix(field, "-") {
		desc = true
		field = field[1:]
	}
	column, ok := sortable[field]
	if !ok {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}
	return column, desc, nil
}

// predicates returns the WHERE conditions. Ownership always comes first.
func (q TaskQuery) predicates(ownerID int64) []*entsql.Predicate {
	preds := []*entsql.Predicate{entsql.EQ(database.ColumnOwnerID, ownerID)}

	if q.Status != nil {
		preds = append(preds, entsql.EQ(database.ColumnStatus, string(*q.Status)))
	}
	if q.Priority != nil {
		preds = append(preds, entsql.EQ(database.ColumnPriority, string(*q.Priority)))
	}
	if q.DueBefore != nil {
		preds = append(preds,
			entsql.NotNull(database.ColumnDueDate),
			entsql.LTE(database.ColumnDueDate, q.DueBefore.UTC()),
		)
	}
	return preds
}

// selector builds the SELECT for one page of the owner's tasks. Ties in
// the sort key come back in store row order. Tasks without a due date sort
// last in both directions.
func (q TaskQuery) selector(dialect string, ownerID int64) (*entsql.Selector, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	column, desc, _ := q.sortColumn()

	s := entsql.Dialect(dialect).
		Select(taskColumns...).
		From(entsql.Table(database.TasksTable)).
		Where(entsql.And(q.predicates(ownerID)...))

	if column == database.ColumnDueDate {
		s.OrderExpr(entsql.ExprP(database.ColumnDueDate + " IS NULL"))
	}
	if desc {
		s.OrderBy(entsql.Desc(column))
	} else {
		s.OrderBy(entsql.Asc(column))
	}

	return s.Limit(q.Limit).Offset(q.Offset), nil
}
