package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: test-model
`)
	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "test-model", cfg.LLM.Model)
	// Everything else falls back to defaults.
	assert.Equal(t, 3, cfg.LLM.RetryAttempts)
	assert.Equal(t, 2400, cfg.History.TokenBudget)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "zero retry attempts",
			yaml: "llm:\n  retry_attempts: 0\n",
		},
		{
			name: "inverted backoff window",
			yaml: "llm:\n  backoff_base_ms: 5000\n  backoff_cap_ms: 100\n",
		},
		{
			name: "negative token budget",
			yaml: "history:\n  token_budget: -1\n",
		},
		{
			name: "unknown session backend",
			yaml: "session_store:\n  backend: etcd\n",
		},
		{
			name: "redis backend without address",
			yaml: "session_store:\n  backend: redis\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestAPIKeyComesFromEnvironment(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKeyEnv = "TUTORGUARD_TEST_KEY"

	t.Setenv("TUTORGUARD_TEST_KEY", "secret")
	assert.Equal(t, "secret", cfg.APIKey())

	cfg.LLM.APIKeyEnv = ""
	assert.Empty(t, cfg.APIKey())
}
