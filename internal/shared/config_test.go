package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path == "" {
			t.Error("expected default database path to be set")
		}
		if config.Migration.WriteRate != 0 {
			t.Errorf("expected write rate to default to 0, got %f", config.Migration.WriteRate)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[database]
path = "/tmp/custom.db"
max_open_conns = 2
max_idle_conns = 1

[migration]
write_rate = 25.0
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/tmp/custom.db" {
			t.Errorf("expected custom path, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 2 {
			t.Errorf("expected max open conns 2, got %d", config.Database.MaxOpenConns)
		}
		if config.Migration.WriteRate != 25.0 {
			t.Errorf("expected write rate 25.0, got %f", config.Migration.WriteRate)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.toml")
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.toml")

		if err := os.WriteFile(configPath, []byte("[[[not toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Fatal("expected error for invalid TOML")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "/tmp/env-override.db")
		t.Setenv(EnvServiceKey, "env-service-key")

		config := DefaultConfig()

		if config.Database.Path != "/tmp/env-override.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
		if config.Intake.ServiceKey != "env-service-key" {
			t.Errorf("expected env service key, got %s", config.Intake.ServiceKey)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Fatal("expected config file to exist")
		}

		if _, err := LoadConfig(configPath); err != nil {
			t.Errorf("created config should be loadable: %v", err)
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}
