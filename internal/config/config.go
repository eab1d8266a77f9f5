// Package config holds the InferenceBot configuration: a YAML file
// with defaults, overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all InferenceBot configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Inference engine limits
	Engine EngineConfig `yaml:"engine"`

	// Wiki endpoints and publishing target
	Wiki WikiConfig `yaml:"wiki"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures CLI log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "InferenceBot",
		Version: "1.0.0",

		Engine: EngineConfig{
			DerivedFactLimit: DefaultDerivedFactLimit,
		},

		Wiki: WikiConfig{
			APIURL:      "http://wikipast.epfl.ch/wikipast/api.php",
			SummaryPage: "Incohérences détectées",
			UserAgent:   "InferenceBot",
			Timeout:     "30s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file. A missing file is not an
// error: defaults (plus env overrides) apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INFERENCEBOT_WIKI_API"); v != "" {
		c.Wiki.APIURL = v
	}
	if v := os.Getenv("INFERENCEBOT_SUMMARY_PAGE"); v != "" {
		c.Wiki.SummaryPage = v
	}
	if v := os.Getenv("INFERENCEBOT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
