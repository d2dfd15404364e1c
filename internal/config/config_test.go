package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults %+v differ from Default() %+v", cfg, Default())
	}
}

func TestLoadEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := load("", map[string]string{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join("configs", "t2048.yaml"), "game:\n  variant: 2048_mini\n")
	cfg, err := load("", map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Variant != "2048_mini" {
		t.Errorf("local config: variant = %q", cfg.Game.Variant)
	}
	if cfg.Game.Spawn4 != 0.10 {
		t.Errorf("missing keys should keep defaults, spawn4 = %v", cfg.Game.Spawn4)
	}

	writeFile(t, filepath.Join(home, ".t2048", "config.yaml"), "game:\n  variant: 2048_large\n")
	cfg, err = load("", map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Variant != "2048_large" {
		t.Errorf("user config should win over local, variant = %q", cfg.Game.Variant)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "game:\n  variant: 2048_huge\nssh:\n  idle_timeout: 90s\n")
	cfg, err = load(custom, map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Variant != "2048_huge" {
		t.Errorf("custom path should win, variant = %q", cfg.Game.Variant)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("idle_timeout = %v, want 90s", cfg.SSH.IdleTimeout)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	isolate(t)

	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), map[string]string{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "game: [unclosed\n")
	if _, err := load(bad, map[string]string{}); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)

	cfg, err := load("", map[string]string{
		"T2048_GAME_VARIANT":    "2048_mini",
		"T2048_GAME_SPAWN4":     "0.5",
		"T2048_GAME_AUTO_RESET": "false",
		"T2048_GAME_SEED":       "42",
		"T2048_SSH_ADDRESS":     ":3333",
		"T2048_WEB_ADDRESS":     "127.0.0.1:9000",
		"T2048_LOG_LEVEL":       "debug",
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := Default()
	want.Game = GameConfig{Variant: "2048_mini", Spawn4: 0.5, AutoReset: false, Seed: 42}
	want.SSH.Address = ":3333"
	want.Web.Address = "127.0.0.1:9000"
	want.Log.Level = "debug"
	if cfg != want {
		t.Errorf("got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	isolate(t)

	if _, err := load("", map[string]string{"T2048_GAME_SPAWN4": "often"}); err == nil {
		t.Error("unparseable env value should fail")
	}

	_, err := load("", map[string]string{"T2048_GAME_SPAWN4": "1.5"})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("out-of-range env value: got %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"spawn4 zero", func(c *Config) { c.Game.Spawn4 = 0 }, true},
		{"spawn4 one", func(c *Config) { c.Game.Spawn4 = 1 }, true},
		{"spawn4 negative", func(c *Config) { c.Game.Spawn4 = -0.1 }, false},
		{"empty variant", func(c *Config) { c.Game.Variant = "" }, false},
		{"zero idle timeout", func(c *Config) { c.SSH.IdleTimeout = 0 }, false},
		{"zero read limit", func(c *Config) { c.Web.ReadLimit = 0 }, false},
		{"zero ping", func(c *Config) { c.Web.PingInterval = 0 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v, want ErrInvalid", err)
			}
		})
	}
}
