package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridstorm.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.History.MaxEntries != 100 {
		t.Errorf("max entries = %d, want 100", cfg.History.MaxEntries)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
	if time.Duration(cfg.Backend.SyncTimeout) != 30*time.Second {
		t.Errorf("sync timeout = %s, want 30s", cfg.Backend.SyncTimeout)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.History.MaxEntries != 100 {
		t.Errorf("max entries = %d, want default", cfg.History.MaxEntries)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[history]
max_entries = 25

[backend]
sync_timeout = "5s"

[logging]
level = "debug"
file = "/tmp/gridstorm.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.History.MaxEntries != 25 {
		t.Errorf("max entries = %d, want 25", cfg.History.MaxEntries)
	}
	if time.Duration(cfg.Backend.SyncTimeout) != 5*time.Second {
		t.Errorf("sync timeout = %s, want 5s", cfg.Backend.SyncTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.File != "/tmp/gridstorm.log" {
		t.Errorf("file = %q", cfg.Logging.File)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 25\n")
	t.Setenv(EnvPrefix+"HISTORY_MAX_ENTRIES", "7")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.History.MaxEntries != 7 {
		t.Errorf("max entries = %d, want env override 7", cfg.History.MaxEntries)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 0\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for zero max_entries")
	}

	path = writeConfig(t, "[logging]\nlevel = \"loud\"\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown level")
	}
}

func TestSyncTimeoutDecoding(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{`"5s"`, 5 * time.Second},
		{`"1m30s"`, 90 * time.Second},
		{`"250ms"`, 250 * time.Millisecond},
		{`"0s"`, 0},
	}
	for _, tc := range cases {
		path := writeConfig(t, "[backend]\nsync_timeout = "+tc.value+"\n")
		cfg, err := Load(path)
		if err != nil {
			t.Errorf("load with sync_timeout = %s: %v", tc.value, err)
			continue
		}
		if time.Duration(cfg.Backend.SyncTimeout) != tc.want {
			t.Errorf("sync_timeout = %s decoded to %s, want %s",
				tc.value, cfg.Backend.SyncTimeout, tc.want)
		}
	}
}

func TestSyncTimeoutRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "[backend]\nsync_timeout = \"fast\"\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed duration")
	}
}

func TestEnvSyncTimeoutOverride(t *testing.T) {
	path := writeConfig(t, "[backend]\nsync_timeout = \"5s\"\n")
	t.Setenv(EnvPrefix+"SYNC_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if time.Duration(cfg.Backend.SyncTimeout) != 2*time.Second {
		t.Errorf("sync timeout = %s, want env override 2s", cfg.Backend.SyncTimeout)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "history = [broken\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 10\n")

	got := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 42\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-got:
		if cfg.History.MaxEntries != 42 {
			t.Errorf("reloaded max entries = %d, want 42", cfg.History.MaxEntries)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresInvalidReload(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 10\n")

	calls := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { calls <- cfg })
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	// Invalid content must not reach the handler.
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 0\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	select {
	case cfg := <-calls:
		t.Errorf("unexpected reload with %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}

	// A later valid write still gets through.
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 11\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	select {
	case cfg := <-calls:
		if cfg.History.MaxEntries != 11 {
			t.Errorf("reloaded max entries = %d, want 11", cfg.History.MaxEntries)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 10\n")
	w, err := Watch(path, func(Config) {})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
