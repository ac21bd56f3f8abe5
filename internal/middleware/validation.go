// internal/middleware/validation.go
package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gurkanbulca/taskmanager/internal/models"
	"github.com/gurkanbulca/taskmanager/pkg/auth"
)

// ValidationConfig holds validation configuration
type ValidationConfig struct {
	MinPasswordLength    int
	MaxPasswordLength    int
	MaxEmailLength       int
	MaxTitleLength       int
	MaxDescriptionLength int
}

// DefaultValidationConfig returns default validation configuration
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MinPasswordLength:    auth.DefaultMinPasswordLength,
		MaxPasswordLength:    auth.DefaultMaxPasswordLength,
		MaxEmailLength:       auth.MaxEmailLength,
		MaxTitleLength:       200,
		MaxDescriptionLength: 1000,
	}
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every field rejected by a single request.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *ValidationErrors) add(field, format string, args ...interface{}) {
	*e = append(*e, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validator checks request payloads before they reach the stores.
type Validator struct {
	config *ValidationConfig
}

// NewValidator creates a validator; a nil config means the defaults.
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &Validator{config: config}
}

func (v *Validator) ValidateSignup(email, password string) error {
	var errs ValidationErrors

	switch {
	case email == "":
		errs.add("email", "is required")
	case len(email) > v.config.MaxEmailLength:
		errs.add("email", "too long (max %d characters)", v.config.MaxEmailLength)
	case auth.ValidateEmail(email) != nil:
		errs.add("email", "invalid email format")
	}

	switch {
	case len(password) < v.config.MinPasswordLength:
		errs.add("password", "must be at least %d characters", v.config.MinPasswordLength)
	case len(password) > v.config.MaxPasswordLength:
		errs.add("password", "must be at most %d bytes", v.config.MaxPasswordLength)
	}

	return errs.orNil()
}

// ValidateTaskInput checks a create payload after defaults are applied.
func (v *Validator) ValidateTaskInput(in models.TaskInput) error {
	var errs ValidationErrors

	v.checkTitle(&errs, in.Title)
	if in.Description != nil {
		v.checkDescription(&errs, *in.Description)
	}
	if !in.Status.Valid() {
		errs.add("status", "must be one of todo, in_progress, done")
	}
	if !in.Priority.Valid() {
		errs.add("priority", "must be one of low, medium, high")
	}

	return errs.orNil()
}

// ValidateTaskPatch checks only the fields present in the patch. Null is
// accepted for description and due_date, which it clears.
func (v *Validator) ValidateTaskPatch(p models.TaskPatch) error {
	var errs ValidationErrors

	if p.Title.Set {
		if !p.Title.Valid {
			errs.add("title", "must not be null")
		} else {
			v.checkTitle(&errs, p.Title.Value)
		}
	}
	if p.Description.Set && p.Description.Valid {
		v.checkDescription(&errs, p.Description.Value)
	}
	if p.Status.Set && (!p.Status.Valid || !p.Status.Value.Valid()) {
		errs.add("status", "must be one of todo, in_progress, done")
	}
	if p.Priority.Set && (!p.Priority.Valid || !p.Priority.Value.Valid()) {
		errs.add("priority", "must be one of low, medium, high")
	}

	return errs.orNil()
}

func (v *Validator) checkTitle(errs *ValidationErrors, title string) {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > v.config.MaxTitleLength {
		errs.add("title", "must be between 1 and %d characters", v.config.MaxTitleLength)
	}
}

func (v *Validator) checkDescription(errs *ValidationErrors, desc string) {
	if utf8.RuneCountInString(desc) > v.config.MaxDescriptionLength {
		errs.add("description", "too long (max %d characters)", v.config.MaxDescriptionLength)
	}
}
