// pkg/security/event_types.go
package security

import (
	"fmt"
)

// EventType names a security-relevant occurrence.
type EventType string

const (
	EventTypeSignup             EventType = "signup"
	EventTypeSignupRejected     EventType = "signup_rejected"
	EventTypeLoginSuccess       EventType = "login_success"
	EventTypeLoginFailed        EventType = "login_failed"
	EventTypeCredentialRejected EventType = "credential_rejected"
)

// Severity grades an event.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var eventSeverities = map[EventType]Severity{
	EventTypeSignup:             SeverityLow,
	EventTypeSignupRejected:     SeverityLow,
	EventTypeLoginSuccess:       SeverityLow,
	EventTypeLoginFailed:        SeverityMedium,
	EventTypeCredentialRejected: SeverityMedium,
}

// ParseEventType converts a string into a known EventType.
func ParseEventType(eventType string) (EventType, error) {
	et := EventType(eventType)
	if _, ok := eventSeverities[et]; !ok {
		return "", fmt.Errorf("unknown event type: %s", eventType)
	}
	return et, nil
}

// ParseSeverity converts a string into a known Severity.
func ParseSeverity(severity string) (Severity, error) {
	switch s := Severity(severity); s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s, nil
	default:
		return "", fmt.Errorf("unknown severity: %s", severity)
	}
}

// DefaultSeverity returns the severity an event is logged with.
func (e EventType) DefaultSeverity() Severity {
	if s, ok := eventSeverities[e]; ok {
		return s
	}
	return SeverityMedium
}
