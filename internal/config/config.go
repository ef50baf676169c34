package config

import (
	"fmt"

	"github.com/joshdurbin/sms-link-shortener/internal/registry"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Registry registry.Config
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port    string
	BaseURL string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path     string
	InMemory bool
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Verbose bool
}

// New creates a new config with the given parameters
func New(port, baseURL, dbPath string, inMemory, verbose bool, registryConfig registry.Config) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    port,
			BaseURL: baseURL,
		},
		Database: DatabaseConfig{
			Path:     dbPath,
			InMemory: inMemory,
		},
		Logging: LoggingConfig{
			Verbose: verbose,
		},
		Registry: registryConfig,
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Server.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Registry.MinPhoneDigits < 1 {
		return fmt.Errorf("minimum phone digits must be positive, got: %d", c.Registry.MinPhoneDigits)
	}

	if c.Registry.MaxGenerateAttempts < 1 {
		return fmt.Errorf("max generate attempts must be positive, got: %d", c.Registry.MaxGenerateAttempts)
	}

	return nil
}
