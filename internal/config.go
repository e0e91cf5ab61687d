package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RetryConfig holds the retry settings applied to API calls
type RetryConfig struct {
	MaxRetries   int     `yaml:"max_retries"`
	DelaySeconds float64 `yaml:"delay_seconds"`
}

// TelemetryConfig controls the fire-and-forget usage reporting
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Config is the process-wide configuration, constructed once at startup and
// passed into each component
type Config struct {
	APIBaseURL   string          `yaml:"api_base_url"`
	ChatEndpoint string          `yaml:"chat_endpoint"`
	SystemPrompt string          `yaml:"system_prompt"`
	TokenEnvVar  string          `yaml:"token_env_var"`
	DataDir      string          `yaml:"data_dir"`
	LogFile      string          `yaml:"log_file"`
	Retry        RetryConfig     `yaml:"retry"`
	Telemetry    TelemetryConfig `yaml:"telemetry"`
}

const defaultSystemPrompt = "You are a helpful assistant for Microsoft 365 data. " +
	"You summarize meetings, emails and documents and answer questions about them."

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:   "https://graph.microsoft.com/v1.0",
		SystemPrompt: defaultSystemPrompt,
		TokenEnvVar:  DefaultTokenEnvVar,
		Retry: RetryConfig{
			MaxRetries:   3,
			DelaySeconds: 1,
		},
	}
}

// DefaultConfigPath returns ~/.graph-assistant/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".graph-assistant", "config.yaml"), nil
}

// LoadConfig reads a YAML config file over the defaults. An empty path means
// the default location; a missing file at the default location is not an
// error, a missing file at an explicit path is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RetryOptions converts the configured retry settings for InvokeWithRetry
func (c *Config) RetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: c.Retry.MaxRetries,
		Delay:      time.Duration(c.Retry.DelaySeconds * float64(time.Second)),
	}
}

// ResolvedDataDir returns the configured data dir, defaulting to
// ~/.graph-assistant
func (c *Config) ResolvedDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".graph-assistant"), nil
}

// HistoryDBPath returns the sqlite history index path inside the data dir
func (c *Config) HistoryDBPath() (string, error) {
	dir, err := c.ResolvedDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// SessionsDir returns the snapshot directory inside the data dir
func (c *Config) SessionsDir() (string, error) {
	dir, err := c.ResolvedDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions"), nil
}
