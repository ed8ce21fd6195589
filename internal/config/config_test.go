package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8788" {
		t.Fatalf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Defaults.Settings().WeeksInProposalPeriod != 40 {
		t.Fatalf("default weeks = %d, want 40", cfg.Defaults.WeeksInProposalPeriod)
	}
}

func TestSaveLoad_RoundTripWithEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Defaults.OverheadPercentage = 20
	cfg.Remote.URL = "http://file.example"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	t.Setenv("STAFFPLAN_REMOTE_URL", "http://env.example")
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.OverheadPercentage != 20 {
		t.Fatalf("OverheadPercentage = %.1f, want 20", got.Defaults.OverheadPercentage)
	}
	if got.Remote.URL != "http://env.example" {
		t.Fatalf("Remote.URL = %q, want env override", got.Remote.URL)
	}
}

func TestStorePath_DefaultsUnderDataDir(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := DefaultConfig()
	if want := filepath.Join(data, "staffplan", "proposals.db"); cfg.StorePath() != want {
		t.Fatalf("StorePath() = %q, want %q", cfg.StorePath(), want)
	}
	cfg.Store.Path = "/tmp/x.db"
	if cfg.StorePath() != "/tmp/x.db" {
		t.Fatalf("StorePath() = %q, want explicit path", cfg.StorePath())
	}
}
