// internal/service/security_logger.go
package service

import (
	"context"
	"log"

	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/pkg/security"
)

// SecurityLogger writes security events, tagged with the caller's address
// and user agent, to a dedicated logger.
type SecurityLogger struct {
	logger *log.Logger
}

// NewSecurityLogger creates a new security logger. A nil logger writes
// through the standard logger.
func NewSecurityLogger(logger *log.Logger) *SecurityLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &SecurityLogger{logger: logger}
}

// LogFromContext logs a security event using context information
func (sl *SecurityLogger) LogFromContext(ctx context.Context, userID int64, eventType security.EventType, description string) {
	clientInfo := middleware.GetClientInfoFromContext(ctx)
	sl.logger.Printf("[SECURITY] event=%s severity=%s user=%d ip=%s ua=%q req=%s: %s",
		eventType, eventType.DefaultSeverity(), userID,
		clientInfo.IPAddress, clientInfo.UserAgent, clientInfo.RequestID, description)
}

func (sl *SecurityLogger) LogSignup(ctx context.Context, userID int64) {
	sl.LogFromContext(ctx, userID, security.EventTypeSignup, "User signed up")
}

func (sl *SecurityLogger) LogSignupRejected(ctx context.Context, email, reason string) {
	sl.LogFromContext(ctx, 0, security.EventTypeSignupRejected, "Signup rejected for "+email+": "+reason)
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, userID int64) {
	sl.LogFromContext(ctx, userID, security.EventTypeLoginSuccess, "User successfully logged in")
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, reason string) {
	sl.LogFromContext(ctx, 0, security.EventTypeLoginFailed, "Login failed for "+email+": "+reason)
}

func (sl *SecurityLogger) LogCredentialRejected(ctx context.Context, reason string) {
	sl.LogFromContext(ctx, 0, security.EventTypeCredentialRejected, "Credential rejected: "+reason)
}
