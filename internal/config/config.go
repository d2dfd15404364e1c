// Package config loads t2048 settings from YAML with environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Game GameConfig `yaml:"game" envPrefix:"GAME_"`
	SSH  SSHConfig  `yaml:"ssh" envPrefix:"SSH_"`
	Web  WebConfig  `yaml:"web" envPrefix:"WEB_"`
	Log  LogConfig  `yaml:"log" envPrefix:"LOG_"`
}

// GameConfig holds board rules shared by every front end.
type GameConfig struct {
	Variant   string  `yaml:"variant" env:"VARIANT"`
	Spawn4    float64 `yaml:"spawn4" env:"SPAWN4"`
	AutoReset bool    `yaml:"auto_reset" env:"AUTO_RESET"`
	Seed      int64   `yaml:"seed" env:"SEED"`
}

// SSHConfig configures the SSH play server.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"ADDRESS"`
	HostKey     string        `yaml:"host_key" env:"HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
}

// WebConfig configures the WebSocket server.
type WebConfig struct {
	Address      string        `yaml:"address" env:"ADDRESS"`
	ReadLimit    int64         `yaml:"read_limit" env:"READ_LIMIT"`
	PingInterval time.Duration `yaml:"ping_interval" env:"PING_INTERVAL"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the hardcoded defaults. They match defaults/t2048.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			Variant:   "2048",
			Spawn4:    0.10,
			AutoReset: true,
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKey:     ".ssh/t2048_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Web: WebConfig{
			Address:      ":8080",
			ReadLimit:    4096,
			PingInterval: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Game.Variant == "" {
		return fmt.Errorf("%w: game.variant is empty", ErrInvalid)
	}
	if c.Game.Spawn4 < 0 || c.Game.Spawn4 > 1 {
		return fmt.Errorf("%w: game.spawn4 %v not in [0, 1]", ErrInvalid, c.Game.Spawn4)
	}
	if c.SSH.IdleTimeout <= 0 {
		return fmt.Errorf("%w: ssh.idle_timeout must be positive", ErrInvalid)
	}
	if c.Web.ReadLimit <= 0 {
		return fmt.Errorf("%w: web.read_limit must be positive", ErrInvalid)
	}
	if c.Web.PingInterval <= 0 {
		return fmt.Errorf("%w: web.ping_interval must be positive", ErrInvalid)
	}
	if !logLevels[c.Log.Level] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
