package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	et, err := ParseEventType("login_failed")
	require.NoError(t, err)
	assert.Equal(t, EventTypeLoginFailed, et)
	assert.Equal(t, SeverityMedium, et.DefaultSeverity())

	_, err = ParseEventType("password_reset_requested")
	require.Error(t, err)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "critical"} {
		got, err := ParseSeverity(s)
		require.NoError(t, err)
		assert.Equal(t, Severity(s), got)
	}

	_, err := ParseSeverity("urgent")
	require.Error(t, err)
}
