package models

import (
	"time"
)

// Status is the workflow state of a task.
type Status string

// Task status constants
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Priority is the urgency of a task.
type Priority string

// Priority constants
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Defaults applied when a task is created without them.
const (
	DefaultStatus   = StatusTodo
	DefaultPriority = PriorityMedium
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Status      Status     `db:"status" json:"status"`
	Priority    Priority   `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	OwnerID     int64      `db:"owner_id" json:"owner_id"`
}

// TaskInput holds the fields of a task being created. The owner is never
// part of it.
type TaskInput struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
}

// TaskPatch lists the fields supplied in a partial update. Fields that are
// not Set keep their stored values.
type TaskPatch struct {
	Title       Field[string]    `json:"title"`
	Description Field[string]    `json:"description"`
	Status      Field[Status]    `json:"status"`
	Priority    Field[Priority]  `json:"priority"`
	DueDate     Field[time.Time] `json:"due_date"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.Priority.Set && !p.DueDate.Set
}
