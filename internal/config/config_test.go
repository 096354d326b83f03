package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.HubBaseURL != "https://huggingface.co" {
		t.Errorf("HubBaseURL = %v, want https://huggingface.co", cfg.HubBaseURL)
	}
	if cfg.RelayTimeout != 10*time.Second {
		t.Errorf("RelayTimeout = %v, want 10s", cfg.RelayTimeout)
	}
	if cfg.ProfileTTL != 6*time.Hour {
		t.Errorf("ProfileTTL = %v, want 6h", cfg.ProfileTTL)
	}
	if cfg.QRDefaultSize != 300 {
		t.Errorf("QRDefaultSize = %v, want 300", cfg.QRDefaultSize)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() should be false without HFQR_REDIS_ADDR")
	}
	if len(cfg.RelayAllowedHosts) != 3 {
		t.Errorf("RelayAllowedHosts = %v, want 3 default hosts", cfg.RelayAllowedHosts)
	}
}

func TestLoadRelayAllowListDisabled(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("HFQR_RELAY_ALLOWED_HOSTS", "")

	cfg := Load()

	if len(cfg.RelayAllowedHosts) != 0 {
		t.Errorf("RelayAllowedHosts = %v, want none when set empty", cfg.RelayAllowedHosts)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hfqr.env")
	content := "HFQR_QR_SIZE=512\nHFQR_LOG_LEVEL=error\nHFQR_HUB_BASE_URL=http://hub.local/\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Setenv("ENV_FILE", path)
	// The real environment wins over the file.
	t.Setenv("HFQR_LOG_LEVEL", "warn")
	t.Cleanup(func() {
		_ = os.Unsetenv("HFQR_QR_SIZE")
		_ = os.Unsetenv("HFQR_HUB_BASE_URL")
	})

	cfg := Load()

	if cfg.QRDefaultSize != 512 {
		t.Errorf("QRDefaultSize = %v, want 512", cfg.QRDefaultSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.HubBaseURL != "http://hub.local" {
		t.Errorf("HubBaseURL = %v, want trailing slash trimmed", cfg.HubBaseURL)
	}
}

func TestLoadRedisPasswordRequired(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("HFQR_REDIS_ADDR", "localhost:6379")
	t.Setenv("HFQR_REDIS_PASSWORD_REQUIRED", "true")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without a redis password")
		}
	}()

	Load()
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      int
		expected int
	}{
		{
			name:     "valid integer",
			key:      "TEST_INT",
			value:    "42",
			def:      1,
			expected: 42,
		},
		{
			name:     "invalid integer uses default",
			key:      "TEST_INT_INVALID",
			value:    "not_a_number",
			def:      7,
			expected: 7,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_INT_MISSING",
			value:    "",
			def:      3,
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := getenvInt(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single value",
			input:    "huggingface.co",
			expected: []string{"huggingface.co"},
		},
		{
			name:     "multiple values with spaces",
			input:    "huggingface.co, cdn-avatars.huggingface.co , aeiljuispo.cloudimg.io",
			expected: []string{"huggingface.co", "cdn-avatars.huggingface.co", "aeiljuispo.cloudimg.io"},
		},
		{
			name:     "quoted values",
			input:    `"10.0.0.0/8", '127.0.0.1'`,
			expected: []string{"10.0.0.0/8", "127.0.0.1"},
		},
		{
			name:     "empty parts are dropped",
			input:    "a,, ,b",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
