package youtube

import (
	"fmt"
	"time"
)

// Config holds YouTube client configuration.
type Config struct {
	// BaseURL is the YouTube origin. Overridable for tests and proxies.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
	// UserAgent is sent on every upstream request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	// AcceptLanguage controls the localization of track names.
	AcceptLanguage string `yaml:"accept_language" mapstructure:"accept_language"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.youtube.com"
	}
	if c.Timeout == 0 {
		c.Timeout = 20
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = "en-US"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("youtube.timeout must be non-negative (got: %d)", c.Timeout)
	}
	return nil
}

// timeout returns the configured timeout as a duration.
func (c *Config) timeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
