package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 8080, config.Server.Port)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
	assert.Equal(t, MerchantMapBackendFile, config.MerchantMap.Backend)
	assert.Equal(t, "data/merchant_map.json", config.MerchantMap.Path)
	assert.Equal(t, "merchant_map", config.MerchantMap.Collection)
	assert.Equal(t, "data/budgy.db", config.Expenses.SQLitePath)
	assert.Equal(t, "", config.Rules.Path)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"BUDGY_LOG_LEVEL":            "debug",
		"BUDGY_LOG_FORMAT":           "json",
		"BUDGY_SERVER_PORT":          "9090",
		"BUDGY_AI_ENABLED":           "true",
		"BUDGY_AI_MODEL":             "gemini-1.5-pro",
		"BUDGY_AI_TIMEOUT_SECONDS":   "10",
		"BUDGY_EXPENSES_SQLITE_PATH": "/tmp/test.db",
		"GEMINI_API_KEY":             "test-api-key",
		"TELEGRAM_BOT_TOKEN":         "test-bot-token",
		"TELEGRAM_CHAT_ID":           "12345",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 9090, config.Server.Port)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 10, config.AI.TimeoutSeconds)
	assert.Equal(t, "/tmp/test.db", config.Expenses.SQLitePath)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
	assert.Equal(t, "test-bot-token", config.Telegram.BotToken)
	assert.Equal(t, "12345", config.Telegram.ChatID)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
server:
  port: 3000
merchant_map:
  backend: "firestore"
  project: "budgy-test"
  collection: "merchants"
rules:
  path: "rules.yaml"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, MerchantMapBackendFirestore, config.MerchantMap.Backend)
	assert.Equal(t, "budgy-test", config.MerchantMap.Project)
	assert.Equal(t, "merchants", config.MerchantMap.Collection)
	assert.Equal(t, "rules.yaml", config.Rules.Path)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
server:
  port: 3000
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	// Environment variables override the config file.
	t.Setenv("BUDGY_LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "env-api-key")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)      // env var wins
	assert.Equal(t, 3000, config.Server.Port)       // config file value
	assert.Equal(t, "env-api-key", config.AI.APIKey) // env var (API key)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	validConfig := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.Server.Port = 8080
		c.AI.Model = "gemini-2.0-flash"
		c.AI.TimeoutSeconds = 30
		c.MerchantMap.Backend = MerchantMapBackendFile
		c.MerchantMap.Path = "data/merchant_map.json"
		c.MerchantMap.Collection = "merchant_map"
		c.Expenses.SQLitePath = "data/budgy.db"
		return c
	}

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid port",
			modifyConfig: func(c *Config) { c.Server.Port = 0 },
			expectError:  "server.port must be between 1 and 65535",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "unknown merchant map backend",
			modifyConfig: func(c *Config) { c.MerchantMap.Backend = "redis" },
			expectError:  "invalid merchant_map.backend",
		},
		{
			name: "file backend without path",
			modifyConfig: func(c *Config) {
				c.MerchantMap.Backend = MerchantMapBackendFile
				c.MerchantMap.Path = ""
			},
			expectError: "merchant_map.path required",
		},
		{
			name: "firestore backend without project",
			modifyConfig: func(c *Config) {
				c.MerchantMap.Backend = MerchantMapBackendFirestore
				c.MerchantMap.Project = ""
			},
			expectError: "merchant_map.project required",
		},
		{
			name:         "missing sqlite path",
			modifyConfig: func(c *Config) { c.Expenses.SQLitePath = "" },
			expectError:  "expenses.sqlite_path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	c := &Config{}
	c.Log.Level = "debug"
	c.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(c)
	assert.NotNil(t, logger)
	assert.Equal(t, "debug", logger.GetLevel().String())
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"BUDGY_LOG_LEVEL",
		"BUDGY_LOG_FORMAT",
		"BUDGY_SERVER_PORT",
		"BUDGY_AI_ENABLED",
		"BUDGY_AI_MODEL",
		"BUDGY_AI_TIMEOUT_SECONDS",
		"BUDGY_MERCHANT_MAP_BACKEND",
		"BUDGY_MERCHANT_MAP_PATH",
		"BUDGY_MERCHANT_MAP_PROJECT",
		"BUDGY_MERCHANT_MAP_COLLECTION",
		"BUDGY_EXPENSES_SQLITE_PATH",
		"BUDGY_RULES_PATH",
		"GEMINI_API_KEY",
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
