package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bind != Default().Bind {
		t.Errorf("Got: %q; Expected: %q", cfg.Bind, Default().Bind)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	body := `
bind: "127.0.0.1:9000"
status_bind: "127.0.0.1:9001"
allowed_origins:
  - "https://chat.example.com"
ping_interval: 10s
read_timeout: 25s
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bind != "127.0.0.1:9000" {
		t.Errorf("Got: %q; Expected: %q", cfg.Bind, "127.0.0.1:9000")
	}
	if cfg.StatusBind != "127.0.0.1:9001" {
		t.Errorf("Got: %q; Expected: %q", cfg.StatusBind, "127.0.0.1:9001")
	}
	if cfg.PingInterval != 10*time.Second {
		t.Errorf("Got: %v; Expected: 10s", cfg.PingInterval)
	}
	// Untouched fields keep their defaults.
	if cfg.WriteTimeout != Default().WriteTimeout {
		t.Errorf("Got: %v; Expected: %v", cfg.WriteTimeout, Default().WriteTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://chat.example.com" {
		t.Errorf("Got: %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Bind = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty bind")
	}

	cfg = Default()
	cfg.MaxMessageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero max_message_size")
	}

	cfg = Default()
	cfg.ReadTimeout = cfg.PingInterval
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for read_timeout <= ping_interval")
	}
}
