package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTokenEnv is the environment variable consulted for the API token
// when the config does not name one. The token itself is never written to
// the config file.
const DefaultTokenEnv = "STARLING_ACCESS_TOKEN"

// DefaultWindowDays is how far back the transaction fetch reaches.
const DefaultWindowDays = 7

// Config represents the top-level spacesweep.yaml configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Audit     AuditConfig     `yaml:"audit"`
}

// APIConfig selects the Starling environment and where the token comes from.
type APIConfig struct {
	Environment string `yaml:"environment"`        // "live" or "sandbox"
	TokenEnv    string `yaml:"token_env"`          // env var holding the bearer token
	BaseURL     string `yaml:"base_url,omitempty"` // override, mainly for testing
}

// ReconcileConfig tunes the workflow.
type ReconcileConfig struct {
	WindowDays int `yaml:"window_days"`
}

// AuditConfig controls the local mutation audit trail.
type AuditConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a spacesweep.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(environment string) *Config {
	return &Config{
		API: APIConfig{
			Environment: environment,
			TokenEnv:    DefaultTokenEnv,
		},
		Reconcile: ReconcileConfig{
			WindowDays: DefaultWindowDays,
		},
		Audit: AuditConfig{
			Dir: "logs",
		},
	}
}

// Token resolves the bearer token from the configured environment variable.
func (c *Config) Token() (string, error) {
	name := c.API.TokenEnv
	if name == "" {
		name = DefaultTokenEnv
	}
	token := os.Getenv(name)
	if token == "" {
		return "", fmt.Errorf("no API token: set %s", name)
	}
	return token, nil
}

// WindowDays returns the configured fetch window, defaulted if unset.
func (c *Config) WindowDays() int {
	if c.Reconcile.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return c.Reconcile.WindowDays
}
