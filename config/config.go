// Package config defines and loads the service configuration from YAML files
// and environment variables.
package config

import (
	"fmt"

	"github.com/skillsenselab/transcript-api/logger"
	"github.com/skillsenselab/transcript-api/server"
	"github.com/skillsenselab/transcript-api/youtube"
)

// ServiceConfig contains the essential configuration fields every service needs.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ObservabilityConfig controls the optional OTLP exporters.
type ObservabilityConfig struct {
	Enabled         bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure        bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricsInterval int     `yaml:"metrics_interval" mapstructure:"metrics_interval"` // seconds
}

// ApplyDefaults applies default values to observability configuration.
func (c *ObservabilityConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsInterval == 0 {
		c.MetricsInterval = 15
	}
}

// Config is the full configuration for the transcript service.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	YouTube       youtube.Config      `yaml:"youtube" mapstructure:"youtube"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "transcript-api"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.YouTube.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.YouTube.Validate(); err != nil {
		return fmt.Errorf("config.youtube: %w", err)
	}
	return nil
}
