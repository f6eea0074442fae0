// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Merchant map backends.
const (
	MerchantMapBackendFile      = "file"
	MerchantMapBackendFirestore = "firestore"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Port int `mapstructure:"port" yaml:"port"`
	} `mapstructure:"server" yaml:"server"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Telegram struct {
		BotToken string `mapstructure:"bot_token" yaml:"-"` // Never serialize the token
		ChatID   string `mapstructure:"chat_id" yaml:"chat_id"`
	} `mapstructure:"telegram" yaml:"telegram"`

	MerchantMap struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Path       string `mapstructure:"path" yaml:"path"`
		Project    string `mapstructure:"project" yaml:"project"`
		Collection string `mapstructure:"collection" yaml:"collection"`
	} `mapstructure:"merchant_map" yaml:"merchant_map"`

	Expenses struct {
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"expenses" yaml:"expenses"`

	Rules struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"rules" yaml:"rules"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budgy")
	v.AddConfigPath(".budgy")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("BUDGY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Secrets always bind from unprefixed environment variables
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind TELEGRAM_BOT_TOKEN environment variable: %v\n", err)
	}
	if err := v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID"); err != nil {
		fmt.Printf("Warning: failed to bind TELEGRAM_CHAT_ID environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.port", 8080)

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	// Telegram defaults
	v.SetDefault("telegram.chat_id", "")

	// Merchant map defaults
	v.SetDefault("merchant_map.backend", MerchantMapBackendFile)
	v.SetDefault("merchant_map.path", "data/merchant_map.json")
	v.SetDefault("merchant_map.project", "")
	v.SetDefault("merchant_map.collection", "merchant_map")

	// Expense ledger defaults
	v.SetDefault("expenses.sqlite_path", "data/budgy.db")

	// Rules defaults
	v.SetDefault("rules.path", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	switch config.MerchantMap.Backend {
	case MerchantMapBackendFile:
		if config.MerchantMap.Path == "" {
			return fmt.Errorf("merchant_map.path required for the file backend")
		}
	case MerchantMapBackendFirestore:
		if config.MerchantMap.Project == "" {
			return fmt.Errorf("merchant_map.project required for the firestore backend")
		}
		if config.MerchantMap.Collection == "" {
			return fmt.Errorf("merchant_map.collection required for the firestore backend")
		}
	default:
		return fmt.Errorf("invalid merchant_map.backend: %s (must be 'file' or 'firestore')", config.MerchantMap.Backend)
	}

	if config.Expenses.SQLitePath == "" {
		return fmt.Errorf("expenses.sqlite_path is required")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
