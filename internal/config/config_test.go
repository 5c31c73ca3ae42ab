package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveScoringAPIURL(t *testing.T) {
	t.Run("falls back to production", func(t *testing.T) {
		// t.Setenv registers the restore, then we unset to simulate a
		// machine without the variable.
		t.Setenv("SCORING_API_URL", "")
		os.Unsetenv("SCORING_API_URL")
		assert.Equal(t, ProductionScoringAPIURL, ResolveScoringAPIURL())
	})

	t.Run("uses override when set", func(t *testing.T) {
		t.Setenv("SCORING_API_URL", "http://localhost:8000")
		assert.Equal(t, "http://localhost:8000", ResolveScoringAPIURL())
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", getEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_STR_MISSING", "fallback"))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_MISSING", 7))

	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_MISSING", false))
}
