// Package config loads the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for pathly.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Planner    PlannerConfig    `toml:"planner"`
	Directions DirectionsConfig `toml:"directions"`
	Resolver   ResolverConfig   `toml:"resolver"`
	Log        LogConfig        `toml:"log"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DataConfig points at the directory holding the SQLite file. Empty means ~/.pathly.
type DataConfig struct {
	Dir string `toml:"dir"`
}

type PlannerConfig struct {
	DayStart   string `toml:"day_start"`
	TravelMode string `toml:"travel_mode"`
	Seed       int64  `toml:"seed"`
}

type DirectionsConfig struct {
	Enabled        bool    `toml:"enabled"`
	BaseURL        string  `toml:"base_url"`
	Profile        string  `toml:"profile"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Concurrency    int     `toml:"concurrency"`
	RateLimit      float64 `toml:"rate_limit"`
}

type ResolverConfig struct {
	BaseURL     string  `toml:"base_url"`
	UserAgent   string  `toml:"user_agent"`
	RateLimit   float64 `toml:"rate_limit"`
	Concurrency int     `toml:"concurrency"`
	MaxRetries  int     `toml:"max_retries"`
}

type LogConfig struct {
	Mode string `toml:"mode"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		Planner: PlannerConfig{DayStart: "09:00", TravelMode: "walking"},
		Directions: DirectionsConfig{
			BaseURL:        "https://router.project-osrm.org",
			Profile:        "foot",
			TimeoutSeconds: 10,
			Concurrency:    4,
			RateLimit:      5,
		},
		Resolver: ResolverConfig{
			BaseURL:     "https://nominatim.openstreetmap.org",
			UserAgent:   "Pathly/1.0 (itinerary planner)",
			RateLimit:   1.0,
			Concurrency: 2,
			MaxRetries:  3,
		},
		Log: LogConfig{Mode: "dev"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Planner.TravelMode {
	case "walking", "driving", "transit":
	default:
		return fmt.Errorf("planner.travel_mode %q must be walking, driving or transit", c.Planner.TravelMode)
	}
	if c.Resolver.RateLimit <= 0 {
		return fmt.Errorf("resolver.rate_limit must be positive")
	}
	if c.Directions.Enabled && c.Directions.BaseURL == "" {
		return fmt.Errorf("directions.base_url is required when directions are enabled")
	}
	return nil
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DirectionsTimeout is the per-request timeout of the directions client
func (c *Config) DirectionsTimeout() time.Duration {
	if c.Directions.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Directions.TimeoutSeconds) * time.Second
}
