package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL != "https://graph.microsoft.com/v1.0" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.TokenEnvVar != DefaultTokenEnvVar {
		t.Errorf("TokenEnvVar = %q", cfg.TokenEnvVar)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.DelaySeconds != 1 {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry enabled by default")
	}
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("missing explicit config path accepted")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_base_url: https://graph.example.test/v1.0
token_env_var: MY_TOKEN
data_dir: /var/lib/assistant
retry:
  max_retries: 5
  delay_seconds: 0.25
telemetry:
  enabled: true
  endpoint: https://telemetry.example.test/events
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIBaseURL != "https://graph.example.test/v1.0" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.TokenEnvVar != "MY_TOKEN" {
		t.Errorf("TokenEnvVar = %q", cfg.TokenEnvVar)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", cfg.Retry.MaxRetries)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint == "" {
		t.Errorf("Telemetry = %+v", cfg.Telemetry)
	}
	// Unset keys keep their defaults
	if cfg.SystemPrompt == "" {
		t.Error("SystemPrompt default lost")
	}
}

func TestLoadConfig_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("retry: [not a map"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("corrupt config accepted")
	}
}

func TestConfig_RetryOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retry = RetryConfig{MaxRetries: 4, DelaySeconds: 0.5}

	opts := cfg.RetryOptions()
	if opts.MaxRetries != 4 {
		t.Errorf("MaxRetries = %d", opts.MaxRetries)
	}
	if opts.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v", opts.Delay)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/srv/assistant"

	db, err := cfg.HistoryDBPath()
	if err != nil {
		t.Fatalf("HistoryDBPath() error = %v", err)
	}
	if db != filepath.Join("/srv/assistant", "history.db") {
		t.Errorf("HistoryDBPath() = %q", db)
	}

	sessions, err := cfg.SessionsDir()
	if err != nil {
		t.Fatalf("SessionsDir() error = %v", err)
	}
	if sessions != filepath.Join("/srv/assistant", "sessions") {
		t.Errorf("SessionsDir() = %q", sessions)
	}
}
