package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8080/api",
			Timeout:     30,
			SearchLimit: 3,
		},
		Audio: AudioConfig{
			SampleRate:     16000,
			Channels:       1,
			BitDepth:       16,
			FramesPerBlock: 4096,
		},
		Playback: PlaybackConfig{
			Enabled:     true,
			CuesEnabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: "127.0.0.1",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid configuration",
			mutate:      func(*Config) {},
			expectError: false,
		},
		{
			name:        "empty base URL",
			mutate:      func(c *Config) { c.API.BaseURL = "" },
			expectError: true,
			errorMsg:    "base_url cannot be empty",
		},
		{
			name:        "invalid API timeout",
			mutate:      func(c *Config) { c.API.Timeout = 0 },
			expectError: true,
			errorMsg:    "timeout must be at least 1 second",
		},
		{
			name:        "invalid search limit",
			mutate:      func(c *Config) { c.API.SearchLimit = 0 },
			expectError: true,
			errorMsg:    "search_limit must be at least 1",
		},
		{
			name:        "invalid sample rate",
			mutate:      func(c *Config) { c.Audio.SampleRate = 8000 },
			expectError: true,
			errorMsg:    "sample_rate must be 16000 Hz",
		},
		{
			name:        "invalid channel count",
			mutate:      func(c *Config) { c.Audio.Channels = 2 },
			expectError: true,
			errorMsg:    "channels must be 1",
		},
		{
			name:        "block size too small",
			mutate:      func(c *Config) { c.Audio.FramesPerBlock = 64 },
			expectError: true,
			errorMsg:    "frames_per_block",
		},
		{
			name:        "invalid metrics port",
			mutate:      func(c *Config) { c.Metrics.Port = 70000 },
			expectError: true,
			errorMsg:    "metrics port must be between 1 and 65535",
		},
		{
			name:        "metrics port ignored when disabled",
			mutate:      func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Port = 0 },
			expectError: false,
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Logging.Level = "trace" },
			expectError: true,
			errorMsg:    "level must be one of",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			expectError: true,
			errorMsg:    "format must be 'json' or 'text'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfigLoad(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config file",
			configYAML: `
api:
  base_url: "http://localhost:8080/api"
  timeout: 30
  search_limit: 3
audio:
  sample_rate: 16000
  channels: 1
  bit_depth: 16
  frames_per_block: 4096
playback:
  enabled: true
  cues_enabled: true
metrics:
  enabled: false
logging:
  level: "info"
  format: "text"
  output: "stdout"
`,
			expectError: false,
		},
		{
			name: "invalid YAML syntax",
			configYAML: `
api:
  base_url: "http://localhost:8080/api"
  timeout: invalid_number
`,
			expectError: true,
			errorMsg:    "failed to parse",
		},
		{
			name: "missing required fields",
			configYAML: `
api:
  timeout: 30
  # missing base_url
`,
			expectError: true,
			errorMsg:    "base_url cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tempDir, "config.yaml")
			err := os.WriteFile(configPath, []byte(tt.configYAML), 0644)
			if err != nil {
				t.Fatalf("Failed to create test config file: %v", err)
			}

			config, err := Load(configPath)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				} else if config == nil {
					t.Errorf("Expected config to be loaded but got nil")
				}
			}
		})
	}
}

func TestConfigLoadNonexistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Errorf("Expected error for nonexistent file but got none")
	}
	if !contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected error about reading file, got: %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	api := APIConfig{Timeout: 30}
	if api.GetTimeoutDuration() != 30*time.Second {
		t.Errorf("Expected 30 seconds, got %v", api.GetTimeoutDuration())
	}

	audio := AudioConfig{SampleRate: 16000, FramesPerBlock: 4096}
	if audio.GetBlockDuration() != 256*time.Millisecond {
		t.Errorf("Expected 256ms block duration, got %v", audio.GetBlockDuration())
	}

	audio = AudioConfig{SampleRate: 0, FramesPerBlock: 4096}
	if audio.GetBlockDuration() != 0 {
		t.Errorf("Expected zero duration for invalid rate, got %v", audio.GetBlockDuration())
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > len(substr) && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
