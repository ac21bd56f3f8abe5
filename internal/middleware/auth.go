// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/pkg/httpx"
)

// AccessTokenParam is the query parameter that carries a token for clients
// unable to set headers.
const AccessTokenParam = "access_token"

var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed authorization header")
)

type userContextKey struct{}

// Authenticator resolves a raw bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

// ExtractCredential returns the raw token of a request. A non-empty
// access_token query parameter takes precedence over the Authorization
// header, which may hold either "Bearer <token>" or the bare token.
func ExtractCredential(r *http.Request) (string, error) {
	if token := r.URL.Query().Get(AccessTokenParam); token != "" {
		return token, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingCredential
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 1:
		return parts[0], nil
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1], nil
	default:
		return "", ErrMalformedCredential
	}
}

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// AuthMiddleware rejects requests without a valid credential and stores the
// authenticated user in the request context.
type AuthMiddleware struct {
	authenticator Authenticator
	onError       ErrorHandler
}

// AuthOption customizes an AuthMiddleware.
type AuthOption func(*AuthMiddleware)

// WithErrorHandler replaces the default response, a generic 401, for
// failed extraction or authentication.
func WithErrorHandler(h ErrorHandler) AuthOption {
	return func(a *AuthMiddleware) {
		a.onError = h
	}
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authenticator Authenticator, opts ...AuthOption) *AuthMiddleware {
	a := &AuthMiddleware{
		authenticator: authenticator,
		onError:       unauthorized,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func unauthorized(w http.ResponseWriter, _ *http.Request, _ error) {
	httpx.Unauthorized(w, "Could not validate credentials")
}

func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractCredential(r)
		if err != nil {
			a.onError(w, r, err)
			return
		}

		user, err := a.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			a.onError(w, r, err)
			return
		}

		info := GetClientInfoFromContext(r.Context())
		info.UserID = user.ID
		info.UserEmail = user.Email

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user stored by AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok && user != nil
}
