// internal/api/auth_handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/service"
	"github.com/gurkanbulca/taskmanager/pkg/httpx"
)

type AuthHandler struct {
	auth *service.AuthService
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup handles POST /auth/signup with a JSON body.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login with form fields username and password.
// The username is the account email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, badRequest("invalid form body"))
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		writeError(w, r, badRequest("username and password are required"))
		return
	}

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: service.TokenType})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, errors.New("auth gate did not set a user"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}
