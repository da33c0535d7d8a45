package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Registry RegistryConfig `toml:"registry"`
	Content  ContentConfig  `toml:"content"`
	Logging  LoggingConfig  `toml:"logging"`
	Profile  ProfileConfig  `toml:"profile"`
}

type EngineConfig struct {
	Name      string        `toml:"name"`
	FrameRate time.Duration `toml:"frame_rate"` // time between frames
	MaxFrames int           `toml:"max_frames"` // 0 = run until signalled
}

type RegistryConfig struct {
	InitialCapacity int  `toml:"initial_capacity"`
	LogUpdates      bool `toml:"log_updates"` // debug-log every deferred pass
}

type ContentConfig struct {
	Prefabs string `toml:"prefabs"` // empty = no prefab table
	Level   string `toml:"level"`   // empty = start with an empty world
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "allocs", "block" or "trace"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.FrameRate <= 0 {
		return fmt.Errorf("engine.frame_rate must be positive, got %s", c.Engine.FrameRate)
	}
	if c.Engine.MaxFrames < 0 {
		return fmt.Errorf("engine.max_frames must not be negative, got %d", c.Engine.MaxFrames)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "allocs", "block", "trace":
	default:
		return fmt.Errorf("profile.mode %q not recognised", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:      "engine2d",
			FrameRate: 16 * time.Millisecond,
		},
		Registry: RegistryConfig{
			InitialCapacity: 1024,
		},
		Content: ContentConfig{
			Prefabs: "data/yaml/prefabs.yaml",
			Level:   "assets/levels/level1.lua",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
