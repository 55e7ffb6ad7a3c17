package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:5678", cfg.AgentBaseURL)
	assert.Equal(t, 30*time.Second, cfg.AgentTimeout)
	assert.Equal(t, 3, cfg.AgentMaxRetries)
	assert.Equal(t, "8000", cfg.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENT_BASE_URL", "http://agents.internal:1234")
	t.Setenv("AGENT_TIMEOUT", "5")
	t.Setenv("AGENT_MAX_RETRIES", "1")
	t.Setenv("PORT", "9090")

	cfg := Load()

	assert.Equal(t, "http://agents.internal:1234", cfg.AgentBaseURL)
	assert.Equal(t, 5*time.Second, cfg.AgentTimeout)
	assert.Equal(t, 1, cfg.AgentMaxRetries)
	assert.Equal(t, "9090", cfg.Port)
}
