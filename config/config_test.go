package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequiredValidation ensures NewConfig fails when required values are
// missing and succeeds once they are all present
func TestRequiredValidation(t *testing.T) {
	for _, key := range []string{"GITHUB_EVENT_NAME", "GITHUB_ACTOR", "GITHUB_TOKEN",
		"GITHUB_API_URL", "GITHUB_SERVER_URL", "GITHUB_RUN_ATTEMPT"} {
		err := os.Unsetenv(key)
		require.NoErrorf(t, err, "failed to unset \"%s\" key", key)
	}

	_, err := NewConfig()
	assert.NotNil(t, err, "NewConfig should have responded with an error")

	for _, key := range []string{"GITHUB_EVENT_NAME", "GITHUB_ACTOR", "GITHUB_TOKEN"} {
		err := os.Setenv(key, "value")
		require.NoErrorf(t, err, "failed to set \"%s\" key to a non-empty value", key)
	}

	config, err := NewConfig()
	require.Nil(t, err, "NewConfig should have responded with no error")

	assert.Equal(t, "https://api.github.com", config.APIURL)
	assert.Equal(t, "https://github.com", config.ServerURL)
	assert.Equal(t, 1, config.RunAttempt)
}

// TestStringRedactsToken ensures the log safe form never contains the token
func TestStringRedactsToken(t *testing.T) {
	config := Config{Token: "ghs_secret"}

	s, err := config.String()
	require.Nil(t, err)

	assert.NotContains(t, s, "ghs_secret")
	assert.Contains(t, s, "REDACTED_NOT_EMPTY")
}
