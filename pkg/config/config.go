// Package config loads the explorer's YAML configuration and builds the
// process logger from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/keiho/pkg/query"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// ExplorerConfig holds view defaults.
type ExplorerConfig struct {
	Tolerance   int    `yaml:"tolerance"`
	DefaultSort string `yaml:"default_sort"`
}

// LogConfig selects log level and output format ("json" or "console").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Direction returns the parsed default sort direction.
func (e ExplorerConfig) Direction() (query.Direction, error) {
	return query.ParseDirection(e.DefaultSort)
}

// Default returns the built-in configuration: local-only server on 8080.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Explorer: ExplorerConfig{
			Tolerance:   query.DefaultTolerance,
			DefaultSort: string(query.Descending),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from KEIHO_HOST, KEIHO_PORT and KEIHO_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if host := os.Getenv("KEIHO_HOST"); host != "" {
		c.Server.Host = host
	}
	if portStr := os.Getenv("KEIHO_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("%w: KEIHO_PORT=%q is not a number", ErrInvalidConfig, portStr)
		}
		c.Server.Port = port
	}
	if level := os.Getenv("KEIHO_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalidConfig)
	}
	if c.Explorer.Tolerance < 0 {
		return fmt.Errorf("%w: explorer.tolerance must be non-negative", ErrInvalidConfig)
	}
	if _, err := c.Explorer.Direction(); err != nil {
		return fmt.Errorf("%w: explorer.default_sort: %v", ErrInvalidConfig, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q (expected json or console)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
