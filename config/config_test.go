package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "transcript-api" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development should enable debug")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.YouTube.BaseURL != "https://www.youtube.com" {
		t.Errorf("expected default youtube base url, got %q", cfg.YouTube.BaseURL)
	}
	if cfg.Observability.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %f", cfg.Observability.SampleRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestConfig_InvalidEnvironment(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Environment = "qa"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown environment")
	}
}

func TestConfig_InvalidPort(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
name: transcript-api
environment: production
logging:
  level: warn
  format: json
server:
  port: 9090
youtube:
  timeout: 5
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production, got %q", cfg.Environment)
	}
	if cfg.Debug {
		t.Error("production must not enable debug")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %q", cfg.Logging.Level)
	}
	if cfg.YouTube.Timeout != 5 {
		t.Errorf("expected timeout 5, got %d", cfg.YouTube.Timeout)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without file should use defaults: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Error("expected default port applied")
	}
}
