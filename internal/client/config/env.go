package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL     = "FITTRACK_API_URL"
	EnvRequestTimeout = "FITTRACK_TIMEOUT"
	EnvDatabasePath   = "FITTRACK_DB"
	EnvLogLevel       = "FITTRACK_LOG_LEVEL"
	EnvMetricsAddr    = "FITTRACK_METRICS_ADDR"
)

// dotenvFile is loaded into the process environment before parseEnv reads
// it. Variables already set are not overridden.
var dotenvFile = ".env"

// parseEnv overlays cfg with FITTRACK_* variables. A missing .env file is
// not an error; a malformed one or a bad timeout panics.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := lookup(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// parseTimeout accepts a Go duration ("20s") or whole seconds ("20").
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
