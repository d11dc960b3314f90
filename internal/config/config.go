// Package config loads the application configuration for the planroom
// server and CLI defaults from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hexfoundry/planroom/pkg/plan"
)

// Config holds server and generation defaults. Zero values fall back to
// Default().
type Config struct {
	Server     Server     `toml:"server"`
	Generation Generation `toml:"generation"`
}

// Server configures the HTTP API.
type Server struct {
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// Generation configures the defaults applied when a request does not
// specify them.
type Generation struct {
	Algorithm string `toml:"algorithm"`
	Seed      int64  `toml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Port:     5000,
			LogLevel: "info",
		},
		Generation: Generation{
			Algorithm: string(plan.AlgorithmGenetic),
		},
	}
}

// Load reads a TOML config file, filling unset fields from Default(). A
// missing path returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return cfg, fmt.Errorf("config %s: invalid port %d", path, cfg.Server.Port)
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = Default().Server.LogLevel
	}
	if cfg.Generation.Algorithm == "" {
		cfg.Generation.Algorithm = Default().Generation.Algorithm
	}

	return cfg, nil
}
