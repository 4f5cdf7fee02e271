package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fittracker/internal/flagx"
	"github.com/dmitrijs2005/fittracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts use
// timex.Duration so they can be strings like "15s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	LogLevel       string         `json:"log_level"`
	MetricsAddr    *string        `json:"metrics_addr"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys absent from the file leave cfg unchanged. Read or unmarshal errors
// panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
}
