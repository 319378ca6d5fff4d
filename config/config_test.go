package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}

	def := Default()
	if cfg.Game.TickRateHz != def.Game.TickRateHz {
		t.Errorf("expected default tick rate %d, got %d", def.Game.TickRateHz, cfg.Game.TickRateHz)
	}
	if cfg.Scripts.Entry != def.Scripts.Entry {
		t.Errorf("expected default entry %s, got %s", def.Scripts.Entry, cfg.Scripts.Entry)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
tick_rate_hz = 30
headless = true

[scripts]
entry = "demo.lua"
watch = false

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Game.TickRateHz != 30 {
		t.Errorf("tick rate not applied: %d", cfg.Game.TickRateHz)
	}
	if !cfg.Game.Headless {
		t.Errorf("headless not applied")
	}
	if cfg.Scripts.Entry != "demo.lua" {
		t.Errorf("entry not applied: %s", cfg.Scripts.Entry)
	}
	if cfg.Scripts.Watch {
		t.Errorf("watch=false not applied")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level not applied: %s", cfg.Log.Level)
	}

	// unset sections fall back to defaults
	if cfg.Audio.SampleRate != Default().Audio.SampleRate {
		t.Errorf("unset audio section lost defaults: %d", cfg.Audio.SampleRate)
	}
}

func TestNormalizeRepairsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
tick_rate_hz = -5
spawn_interval_frames = 0
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	def := Default()
	if cfg.Game.TickRateHz != def.Game.TickRateHz {
		t.Errorf("negative tick rate not repaired: %d", cfg.Game.TickRateHz)
	}
	if cfg.Game.SpawnInterval != def.Game.SpawnInterval {
		t.Errorf("zero spawn interval not repaired: %d", cfg.Game.SpawnInterval)
	}
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game\nbroken"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("malformed TOML should error")
	}
}

func TestTickInterval(t *testing.T) {
	cfg := Default()
	cfg.Game.TickRateHz = 50
	if got := cfg.TickInterval(); got != 20*time.Millisecond {
		t.Errorf("expected 20ms, got %v", got)
	}
}
