package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
logger:
  level: debug
  env: production
llm:
  provider: ollama
  model: qwen3:0.6b
  server_url: http://llm:11434
  timeout: 45s
quiz:
  max_source_runes: 5000
cache:
  enabled: true
  address: redis:6379
  ttl: 1h
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "production", cfg.Logger.Env)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen3:0.6b", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5000, cfg.Quiz.MaxSourceRunes)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)

	// untouched keys keep their defaults
	assert.Equal(t, 5, cfg.Quiz.DefaultCount)
	assert.Equal(t, 0.95, cfg.LLM.TopP)
	assert.Equal(t, 40, cfg.LLM.TopK)
	assert.Equal(t, 8192, cfg.LLM.MaxTokens)
	assert.Equal(t, 10*1024*1024, cfg.Server.MaxUploadBytes)
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: openai\n")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoadConfigFile_GoogleAPIKeyFallback(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: googleai\n")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "llm:\n  provider: mystery\n"},
		{"zero timeout", "llm:\n  timeout: 0s\n"},
		{"cache without address", "cache:\n  enabled: true\n  address: \"\"\n"},
		{"zero source limit", "quiz:\n  max_source_runes: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
