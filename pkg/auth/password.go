// pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword = errors.New("password does not meet requirements")
	ErrInvalidEmail = errors.New("invalid email address")
)

const (
	DefaultMinPasswordLength = 6
	// bcrypt ignores nothing past 72 bytes; it rejects them instead.
	DefaultMaxPasswordLength = 72
	MaxEmailLength           = 255
)

// PasswordManager handles password hashing and validation
type PasswordManager struct {
	minLength int
	maxLength int
	cost      int
	dummyHash []byte
}

// NewPasswordManager creates a new password manager. A cost outside bcrypt's
// range falls back to bcrypt.DefaultCost.
func NewPasswordManager(cost int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	pm := &PasswordManager{
		minLength: DefaultMinPasswordLength,
		maxLength: DefaultMaxPasswordLength,
		cost:      cost,
	}
	pm.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return pm
}

// WithMinLength returns the manager with a different minimum password
// length. Values outside 1..72 are ignored.
func (pm *PasswordManager) WithMinLength(n int) *PasswordManager {
	if n >= 1 && n <= pm.maxLength {
		pm.minLength = n
	}
	return pm
}

// HashPassword hashes a password using bcrypt
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	if err := pm.ValidatePassword(password); err != nil {
		return "", err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), pm.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a password with a hash
func (pm *PasswordManager) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// BurnCompare spends the same time as a real comparison. It is used when
// there is no stored hash to compare against.
func (pm *PasswordManager) BurnCompare(password string) {
	_ = bcrypt.CompareHashAndPassword(pm.dummyHash, []byte(password))
}

// ValidatePassword checks if a password meets the length requirements
func (pm *PasswordManager) ValidatePassword(password string) error {
	if len(password) < pm.minLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrWeakPassword, pm.minLength)
	}
	if len(password) > pm.maxLength {
		return fmt.Errorf("%w: maximum length is %d bytes", ErrWeakPassword, pm.maxLength)
	}
	return nil
}

// ValidateEmail validates an email address format
func ValidateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: too long", ErrInvalidEmail)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
