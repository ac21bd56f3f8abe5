// internal/api/router.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/service"
	"github.com/gurkanbulca/taskmanager/pkg/httpx"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the collaborators of the HTTP surface.
type Dependencies struct {
	AuthService *service.AuthService
	TaskService *service.TaskService
	DB          Pinger
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

// NewRouter builds the HTTP handler for the task API.
func NewRouter(deps Dependencies) http.Handler {
	authHandler := &AuthHandler{auth: deps.AuthService}
	taskHandler := &TaskHandler{tasks: deps.TaskService}
	authGate := middleware.NewAuthMiddleware(deps.AuthService, middleware.WithErrorHandler(writeError))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if deps.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.ClientInfoMiddleware)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(httpx.SecurityHeadersMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task Manager API is running"})
	})
	r.Get("/healthz", healthHandler(deps.DB))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(authGate.Handler).Get("/me", authHandler.Me)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authGate.Handler)
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Get("/{id}", taskHandler.Get)
		r.Patch("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
