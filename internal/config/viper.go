// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	HTTP struct {
		Addr            string `mapstructure:"addr" yaml:"addr"`
		ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
		WriteTimeoutSec int    `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	} `mapstructure:"http" yaml:"http"`

	Mongo struct {
		URI      string `mapstructure:"uri" yaml:"-"` // may embed credentials, never serialize
		Database string `mapstructure:"database" yaml:"database"`
	} `mapstructure:"mongo" yaml:"mongo"`

	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret" yaml:"-"` // never serialize the secret
	} `mapstructure:"auth" yaml:"auth"`

	Import struct {
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateOrder  string `mapstructure:"date_order" yaml:"date_order"`
		RulesFile  string `mapstructure:"rules_file" yaml:"rules_file"`
		MaxFileMB  int    `mapstructure:"max_file_mb" yaml:"max_file_mb"`
	} `mapstructure:"import" yaml:"import"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finanzas")
	v.AddConfigPath(".finanzas")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("FINANZAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Secrets are always read from unprefixed environment variables
	if err := v.BindEnv("mongo.uri", "MONGODB_URI"); err != nil {
		fmt.Printf("Warning: failed to bind MONGODB_URI environment variable: %v\n", err)
	}
	if err := v.BindEnv("auth.jwt_secret", "JWT_SECRET"); err != nil {
		fmt.Printf("Warning: failed to bind JWT_SECRET environment variable: %v\n", err)
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

	// HTTP defaults
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout_seconds", 30)
	v.SetDefault("http.write_timeout_seconds", 60)

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "finanzas")

	// Import defaults
	v.SetDefault("import.delimiter", ";")
	v.SetDefault("import.date_order", "dmy")
	v.SetDefault("import.rules_file", "")
	v.SetDefault("import.max_file_mb", 10)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate import delimiter
	if len(config.Import.Delimiter) != 1 {
		return fmt.Errorf("import delimiter must be a single character, got: %s", config.Import.Delimiter)
	}

	// Validate date order
	if config.Import.DateOrder != "dmy" && config.Import.DateOrder != "ymd" {
		return fmt.Errorf("invalid date order: %s (must be 'dmy' or 'ymd')", config.Import.DateOrder)
	}

	if config.Import.MaxFileMB < 1 || config.Import.MaxFileMB > 100 {
		return fmt.Errorf("import.max_file_mb must be between 1 and 100, got: %d", config.Import.MaxFileMB)
	}

	if config.Mongo.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}

	return nil
}
