package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. TRANSCRIPT_SERVER_PORT.
const envPrefix = "TRANSCRIPT"

// Load reads configuration from an optional .env file, an optional YAML
// config file, and environment variables, in increasing precedence.
// An empty configFile triggers a search of the standard locations.
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// loadEnvFile loads a .env file if one exists next to the process.
func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// findConfigFile searches the standard locations for config.yml.
func findConfigFile() string {
	searchPaths := []string{
		"./cmd/transcript-api/config.yml",
		"../cmd/transcript-api/config.yml",
		"./config/config.yml",
		"./config.yml",
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
