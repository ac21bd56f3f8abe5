// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/internal/repository"
	"github.com/gurkanbulca/taskmanager/pkg/auth"
)

// TokenType is the scheme clients must present issued tokens with.
const TokenType = "bearer"

var (
	// ErrUnauthenticated covers every reason a presented token is not
	// accepted: bad signature, expiry, malformed claims, unknown subject.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials is returned by Login for both unknown emails and
	// wrong passwords.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// AuthService implements signup, login and token authentication.
type AuthService struct {
	users           repository.UserStore
	tokenManager    *auth.TokenManager
	passwordManager *auth.PasswordManager
	validator       *middleware.Validator
	securityLogger  *SecurityLogger
}

func NewAuthService(
	users repository.UserStore,
	tokenManager *auth.TokenManager,
	passwordManager *auth.PasswordManager,
	validator *middleware.Validator,
	securityLogger *SecurityLogger,
) *AuthService {
	return &AuthService{
		users:           users,
		tokenManager:    tokenManager,
		passwordManager: passwordManager,
		validator:       validator,
		securityLogger:  securityLogger,
	}
}

// Signup registers a new user. Emails are stored exactly as given.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.validator.ValidateSignup(email, password); err != nil {
		s.securityLogger.LogSignupRejected(ctx, email, "invalid input")
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, hashedPassword)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.securityLogger.LogSignupRejected(ctx, email, "email already registered")
		}
		return nil, err
	}

	s.securityLogger.LogSignup(ctx, user.ID)
	return user, nil
}

// VerifyLogin returns the user owning email if password matches. An unknown
// email costs the same bcrypt comparison as a wrong password.
func (s *AuthService) VerifyLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.passwordManager.BurnCompare(password)
		s.securityLogger.LogLoginFailed(ctx, email, "user not found")
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.ComparePassword(user.HashedPassword, password); err != nil {
		s.securityLogger.LogLoginFailed(ctx, email, "invalid password")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login verifies the credentials and issues an access token for the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.VerifyLogin(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokenManager.Issue(user.Email)
	if err != nil {
		return "", err
	}

	s.securityLogger.LogLoginSuccess(ctx, user.ID)
	return token, nil
}

// Authenticate resolves a raw access token to its user.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	email, err := s.tokenManager.Verify(rawToken)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			reason = "expired token"
		}
		s.securityLogger.LogCredentialRejected(ctx, reason)
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.securityLogger.LogCredentialRejected(ctx, "unknown subject")
		return nil, ErrUnauthenticated
	}

	return user, nil
}
