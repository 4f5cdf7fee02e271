package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the fittracker CLI.
//
// Fields:
//   - APIBaseURL: root of the backend API; endpoint paths are resolved
//     against it.
//   - RequestTimeout: per-request timeout of the backend client.
//   - DatabasePath: SQLite file holding the local session.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: listen address of the Prometheus endpoint; empty
//     disables it.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "session.db"
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config from defaults, then overlays the
// environment, a JSON file and command-line flags taken from os.Args.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig with an explicit argument list.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
