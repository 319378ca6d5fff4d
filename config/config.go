package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the runtime configuration, loaded from TOML.
// Zero values are replaced by defaults in Load
type Config struct {
	Game    GameConfig    `toml:"game"`
	Scripts ScriptsConfig `toml:"scripts"`
	Audio   AudioConfig   `toml:"audio"`
	Log     LogConfig     `toml:"log"`
}

type GameConfig struct {
	TickRateHz    int     `toml:"tick_rate_hz"`
	SpawnInterval int     `toml:"spawn_interval_frames"`
	ShakeTrail    float64 `toml:"shake_trail_seconds"`
	Headless      bool    `toml:"headless"`
}

type ScriptsConfig struct {
	Dir      string `toml:"dir"`
	Entry    string `toml:"entry"`
	Watch    bool   `toml:"watch"`
	Debounce int    `toml:"debounce_ms"`
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	SampleRate int  `toml:"sample_rate"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRateHz:    60,
			SpawnInterval: 120,
			ShakeTrail:    0.8,
		},
		Scripts: ScriptsConfig{
			Dir:      "scripts",
			Entry:    "main.lua",
			Watch:    true,
			Debounce: 200,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "info",
			Path:  "script-fighter.log",
		},
	}
}

// Load reads a TOML config file, filling unset fields with defaults.
// A missing file is not an error: defaults are returned
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Game.TickRateHz <= 0 {
		c.Game.TickRateHz = def.Game.TickRateHz
	}
	if c.Game.SpawnInterval <= 0 {
		c.Game.SpawnInterval = def.Game.SpawnInterval
	}
	if c.Game.ShakeTrail <= 0 {
		c.Game.ShakeTrail = def.Game.ShakeTrail
	}
	if c.Scripts.Dir == "" {
		c.Scripts.Dir = def.Scripts.Dir
	}
	if c.Scripts.Entry == "" {
		c.Scripts.Entry = def.Scripts.Entry
	}
	if c.Scripts.Debounce <= 0 {
		c.Scripts.Debounce = def.Scripts.Debounce
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// TickInterval converts the configured rate to a frame duration
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRateHz)
}
