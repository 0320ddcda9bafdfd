package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	// Run in a directory without a config file
	tempDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, "gpt-4", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "claude-3-sonnet-20240229", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "gemini-pro", cfg.LLM.Google.Model)
	assert.Equal(t, "command", cfg.LLM.Cohere.Model)
	assert.Equal(t, 3600, cfg.Session.TTL)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
server:
  port: 9999
  environment: "test"

auth:
  enabled: false

llm:
  default_provider: "anthropic"
  timeout: 60
  max_retries: 5
  anthropic:
    api_key: "test-key"
    model: "test-model"

session:
  ttl: 120

mining:
  service_url: "http://pm4py.test:9000"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Environment)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "anthropic", cfg.LLM.DefaultProvider)
	assert.Equal(t, 60, cfg.LLM.Timeout)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, "test-key", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "test-model", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 120, cfg.Session.TTL)
	assert.Equal(t, "http://pm4py.test:9000", cfg.Mining.ServiceURL)
}

func TestLoad_LegacyEnvironmentVariables(t *testing.T) {
	resetViper(t)

	tempDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)
	os.Chdir(tempDir)

	t.Setenv("AUTH_USERNAME", "operator")
	t.Setenv("AUTH_PASSWORD", "s3cret")
	t.Setenv("ENABLE_AUTH", "false")
	t.Setenv("OPENAI_API_KEY", "sk-test-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-anthropic")
	t.Setenv("GOOGLE_API_KEY", "test-google")
	t.Setenv("COHERE_API_KEY", "test-cohere")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "operator", cfg.Auth.Username)
	assert.Equal(t, "s3cret", cfg.Auth.Password)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "sk-test-openai", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "sk-test-anthropic", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "test-google", cfg.LLM.Google.APIKey)
	assert.Equal(t, "test-cohere", cfg.LLM.Cohere.APIKey)
}
