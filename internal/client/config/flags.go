package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend API base URL
//	-t int      request timeout in seconds
//	-d string   session database path
//	-l string   log level
//	-m string   metrics listen address
//
// Only these flags are taken from args, via flagx.FilterArgs, so other
// components may own the rest. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l", "-m"})

	fs := flag.NewFlagSet("fittracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
