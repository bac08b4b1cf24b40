// Package config assembles runtime settings for the PocketFarm CLI from
// several layers: built-in defaults, environment variables (with optional
// .env file), a JSON config file, and command-line flags. Later sources take
// precedence over earlier ones.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the PocketFarm CLI.
//
// Fields:
//   - ServerEndpointAddr: base origin of the backend REST service.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabaseDSN: sqlite DSN of the local client database.
type Config struct {
	ServerEndpointAddr string        `env:"POCKETFARM_SERVER_ADDR"`
	RequestTimeout     time.Duration `env:"POCKETFARM_REQUEST_TIMEOUT"`
	DatabaseDSN        string        `env:"POCKETFARM_DATABASE_DSN"`
}

// LoadDefaults populates c with sensible defaults. The endpoint matches the
// backend's development origin; override it for any other deployment.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:5000"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "pocketfarm.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given via -c/-config), and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
