package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "stationq.yaml", `
storage:
  path: /var/lib/stationq/stationq.db
  busy_timeout: 5s
logging:
  level: debug
  console: true
  email:
    enabled: true
    min_level: error
daemon:
  schedule: "0 * * * *"
  timezone: Europe/Brussels
`)

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("driver default = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "/var/lib/stationq/stationq.db" {
		t.Errorf("path = %q", cfg.Storage.Path)
	}
	if got := cfg.BusyTimeout(); got != 5*time.Second {
		t.Errorf("BusyTimeout = %v", got)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Email.Enabled {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Daemon.Schedule != "0 * * * *" || cfg.Daemon.Timezone != "Europe/Brussels" {
		t.Errorf("daemon = %+v", cfg.Daemon)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "stationq.json",
		`{"storage": {"driver": "memory"}, "logging": {"console": true}, "daemon": {}}`)

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("memory driver should not get a default path, got %q", cfg.Storage.Path)
	}
	if cfg.Daemon.Schedule != "@hourly" {
		t.Errorf("schedule default = %q", cfg.Daemon.Schedule)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "stationq.yaml", "storrage:\n  path: x\n")
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadRejectsBadBusyTimeout(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "stationq.yaml", "storage:\n  busy_timeout: soonish\n")
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected invalid duration to be rejected")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path == "" {
		t.Errorf("storage defaults = %+v", cfg.Storage)
	}
	if !cfg.Logging.Console || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Daemon.Schedule != "@hourly" {
		t.Errorf("daemon defaults = %+v", cfg.Daemon)
	}
}
