package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables honored by the batch entry point. They override the
// corresponding config file values so the migration can run with no flags.
const (
	EnvDatabaseURL = "LUDEX_DATABASE_URL"
	EnvServiceKey  = "LUDEX_SERVICE_KEY"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Migration MigrationConfig `toml:"migration"`
	Intake    IntakeConfig    `toml:"intake"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MigrationConfig contains settings for the catalog consolidation run.
type MigrationConfig struct {
	// WriteRate limits store writes to this many per second during a run.
	// Zero disables throttling, appropriate for local databases.
	WriteRate float64 `toml:"write_rate"`
}

// IntakeConfig contains credentials for the box-art photo intake service.
// The service key is privileged: it must bypass per-row access control so
// batch operations can read and write across all users.
type IntakeConfig struct {
	ServiceURL string `toml:"service_url"`
	ServiceKey string `toml:"service_key"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment overrides ([EnvDatabaseURL], [EnvServiceKey]) are applied after parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvServiceKey); v != "" {
		c.Intake.ServiceKey = v
	}
}
