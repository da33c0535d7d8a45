package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[engine]
frame_rate = "33ms"
max_frames = 120

[logging]
level = "debug"

[profile]
mode = "cpu"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.FrameRate != 33*time.Millisecond || cfg.Engine.MaxFrames != 120 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Engine.Name != "engine2d" || cfg.Registry.InitialCapacity != 1024 || cfg.Logging.Format != "console" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Profile.Mode != "cpu" {
		t.Errorf("overrides lost: %+v %+v", cfg.Logging, cfg.Profile)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[engine", "parse config"},
		{"zero frame rate", "[engine]\nframe_rate = \"0s\"", "frame_rate"},
		{"negative frames", "[engine]\nmax_frames = -1", "max_frames"},
		{"profile mode", "[profile]\nmode = \"gpu\"", "profile.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}
