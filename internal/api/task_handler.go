// internal/api/task_handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/internal/repository"
	"github.com/gurkanbulca/taskmanager/internal/service"
	"github.com/gurkanbulca/taskmanager/pkg/httpx"
)

type TaskHandler struct {
	tasks *service.TaskService
}

// createTaskRequest has no owner field; an owner_id in the body is ignored.
type createTaskRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      *models.Status   `json:"status"`
	Priority    *models.Priority `json:"priority"`
	DueDate     *time.Time       `json:"due_date"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), ownerID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	q, err := parseTaskQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), ownerID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	httpx.WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, task)
}

// Update applies a partial update. Absent fields are kept, null clears
// description and due_date.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), ownerID, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), ownerID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ownerFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, errors.New("auth gate did not set a user"))
		return 0, false
	}
	return user.ID, true
}

func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, badRequest("task id must be an integer")
	}
	return id, nil
}

// parseTaskQuery reads filters, sort and pagination from the query string.
// Missing parameters take their defaults; range checks are left to the
// query engine.
func parseTaskQuery(r *http.Request) (repository.TaskQuery, error) {
	values := r.URL.Query()
	q := repository.NewTaskQuery()

	if v := values.Get("status"); v != "" {
		status := models.Status(v)
		q.Status = &status
	}
	if v := values.Get("priority"); v != "" {
		priority := models.Priority(v)
		q.Priority = &priority
	}
	if v := values.Get("due_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, badRequest("due_before must be an RFC 3339 timestamp")
		}
		q.DueBefore = &t
	}
	if v := values.Get("sort"); v != "" {
		q.Sort = v
	}
	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, badRequest("limit must be an integer")
		}
		q.Limit = n
	}
	if v := values.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, badRequest("offset must be an integer")
		}
		q.Offset = n
	}

	return q, nil
}
