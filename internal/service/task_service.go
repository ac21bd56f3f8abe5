// internal/service/task_service.go
package service

import (
	"context"
	"time"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/internal/repository"
)

// CreateTaskParams is a create request before defaults. Nil status and
// priority become todo and medium.
type CreateTaskParams struct {
	Title       string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	DueDate     *time.Time
}

// TaskService runs task operations on behalf of one owner. The owner id is
// always the authenticated user's and never taken from a payload.
type TaskService struct {
	repo      repository.TaskStore
	validator *middleware.Validator
}

func NewTaskService(repo repository.TaskStore, validator *middleware.Validator) *TaskService {
	return &TaskService{
		repo:      repo,
		validator: validator,
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, ownerID int64, params CreateTaskParams) (*models.Task, error) {
	input := &models.TaskInput{
		Title:       params.Title,
		Description: params.Description,
		Status:      models.DefaultStatus,
		Priority:    models.DefaultPriority,
		DueDate:     params.DueDate,
	}
	if params.Status != nil {
		input.Status = *params.Status
	}
	if params.Priority != nil {
		input.Priority = *params.Priority
	}

	if err := s.validator.ValidateTaskInput(*input); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, ownerID, input)
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// ListTasks returns one page of the owner's tasks.
func (s *TaskService) ListTasks(ctx context.Context, ownerID int64, q repository.TaskQuery) ([]*models.Task, error) {
	return s.repo.List(ctx, ownerID, q)
}

// UpdateTask applies the fields present in patch.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id int64, patch models.TaskPatch) (*models.Task, error) {
	if err := s.validator.ValidateTaskPatch(patch); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ownerID, id, &patch)
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}
