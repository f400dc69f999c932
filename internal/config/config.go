// Package config loads the mapforge tool configuration: daemon settings,
// store settings, logging, and named generation presets.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/mapforge/internal/logger"
)

// Config holds the full tool configuration.
type Config struct {
	Service ServiceConfig     `yaml:"service"`
	Store   StoreConfig       `yaml:"store"`
	Logging logger.Config     `yaml:"logging"`
	Presets map[string]Preset `yaml:"presets"`
}

// ServiceConfig holds the generation daemon's settings.
type ServiceConfig struct {
	// Address is the host:port the WebSocket service listens on.
	Address string `yaml:"address"`

	// AllowedOrigins is a list of origins allowed to connect.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// StoreConfig selects the region store backend.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres". Empty disables the store.
	Driver string `yaml:"driver"`

	// DSN is the driver-specific connection string: a file path for
	// SQLite, a connection URL for PostgreSQL.
	DSN string `yaml:"dsn"`
}

// Preset is a named generation parameter set selectable from the CLI.
type Preset struct {
	Algorithm   string  `yaml:"algorithm"`
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	RoomDensity float64 `yaml:"room_density"`
	ConnDensity float64 `yaml:"conn_density"`
	Seed        int64   `yaml:"seed"`
}

// DefaultConfig returns a Config with workable defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Address:        "127.0.0.1:4040",
			AllowedOrigins: []string{},
			MaxMessageSize: 1 << 20,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "mapforge.db",
		},
		Logging: logger.DefaultConfig(),
		Presets: map[string]Preset{
			"small-maze":  {Algorithm: "maze", Rows: 8, Cols: 8, ConnDensity: 0.15},
			"deep-cavern": {Algorithm: "cavern", Rows: 24, Cols: 24, RoomDensity: 0.55, ConnDensity: 0.6},
			"market-town": {Algorithm: "town", Rows: 10, Cols: 18, RoomDensity: 0.4, ConnDensity: 0.5},
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults; a malformed file yields the defaults and the parse error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}
	config.Logging.ApplyEnvOverrides()
	return config, nil
}

// IsOriginAllowed checks if the given origin may connect. Returns true
// when AllowedOrigins contains "*" or the exact origin, or when the list
// is empty and the origin matches the request host (same-origin).
func (c *ServiceConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // no origin header means a non-browser client
	}
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")
	return originHost == requestHost
}
