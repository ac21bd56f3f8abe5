// internal/api/errors.go
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/repository"
	"github.com/gurkanbulca/taskmanager/internal/service"
	"github.com/gurkanbulca/taskmanager/pkg/httpx"
)

// requestError is a request that could not be parsed: malformed JSON, a
// non-numeric id or an unparsable query parameter.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// writeError maps a handler error to its HTTP response. Anything not
// recognised is a 500 with the cause logged and a generic body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs middleware.ValidationErrors
	var reqErr *requestError

	switch {
	case errors.As(err, &verrs):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": verrs})
	case errors.As(err, &reqErr):
		httpx.Error(w, http.StatusUnprocessableEntity, reqErr.msg)
	case errors.Is(err, middleware.ErrMissingCredential):
		httpx.Unauthorized(w, "Not authenticated")
	case errors.Is(err, middleware.ErrMalformedCredential),
		errors.Is(err, service.ErrUnauthenticated):
		httpx.Unauthorized(w, "Could not validate credentials")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Unauthorized(w, "Incorrect email or password")
	case errors.Is(err, repository.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		httpx.Error(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, repository.ErrInvalidSort),
		errors.Is(err, repository.ErrInvalidPagination):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
