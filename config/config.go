// Package config provides configuration loading and management for the
// taskboard server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage driver names accepted in storage.driver.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverNATS   = "nats"
)

// Config represents the complete taskboard configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	NATS    NATSConfig    `yaml:"nats"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`
	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Driver is one of "memory", "sqlite" or "nats"
	Driver string `yaml:"driver"`
	// Path is the database file for the sqlite driver
	Path string `yaml:"path"`
	// Seed loads the demo projects and tasks on startup (memory driver only)
	Seed bool `yaml:"seed"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = no NATS connection)
	URL string `yaml:"url"`
	// PublishEvents enables change-event publishing when connected
	PublishEvents bool `yaml:"publish_events"`
}

// AuthConfig configures token issuance
type AuthConfig struct {
	// TokenSecret signs session tokens; required
	TokenSecret string `yaml:"token_secret"`
	// TokenTTL is the session token lifetime (default: 24h)
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			Path:   "taskboard.db",
			Seed:   false,
		},
		NATS: NATSConfig{
			URL:           "",
			PublishEvents: false,
		},
		Auth: AuthConfig{
			TokenSecret: "",
			TokenTTL:    24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverNATS:
		if c.NATS.URL == "" {
			return fmt.Errorf("nats.url is required for the nats driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q, %q or %q", DriverMemory, DriverSQLite, DriverNATS)
	}
	if c.NATS.PublishEvents && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required when nats.publish_events is set")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}

	// Storage
	if other.Storage.Driver != "" {
		c.Storage.Driver = other.Storage.Driver
	}
	if other.Storage.Path != "" {
		c.Storage.Path = other.Storage.Path
	}
	if other.Storage.Seed {
		c.Storage.Seed = true
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.PublishEvents {
		c.NATS.PublishEvents = true
	}

	// Auth
	if other.Auth.TokenSecret != "" {
		c.Auth.TokenSecret = other.Auth.TokenSecret
	}
	if other.Auth.TokenTTL != 0 {
		c.Auth.TokenTTL = other.Auth.TokenTTL
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
