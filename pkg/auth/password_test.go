package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordManager_HashAndCompare(t *testing.T) {
	pm := NewPasswordManager(bcrypt.MinCost)

	hash, err := pm.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, pm.ComparePassword(hash, "secret1"))
	assert.Error(t, pm.ComparePassword(hash, "secret2"))
}

func TestPasswordManager_ValidatePassword(t *testing.T) {
	pm := NewPasswordManager(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "12345", wantErr: true},
		{name: "minimum", password: "123456"},
		{name: "maximum", password: strings.Repeat("a", 72)},
		{name: "too long", password: strings.Repeat("a", 73), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrWeakPassword)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPasswordManager_WithMinLength(t *testing.T) {
	pm := NewPasswordManager(bcrypt.MinCost).WithMinLength(8)
	assert.ErrorIs(t, pm.ValidatePassword("1234567"), ErrWeakPassword)
	assert.NoError(t, pm.ValidatePassword("12345678"))

	pm.WithMinLength(0)
	assert.ErrorIs(t, pm.ValidatePassword("1234567"), ErrWeakPassword)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{email: "u@x.com"},
		{email: "first.last+tag@example.co.uk"},
		{email: "", wantErr: true},
		{email: "invalid-email", wantErr: true},
		{email: "Name <u@x.com>", wantErr: true},
		{email: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
		})
	}
}
