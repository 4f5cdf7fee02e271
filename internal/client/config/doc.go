// Package config loads runtime configuration for the fittracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables FITTRACK_*, optionally read from a .env file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-l string   log level
//	-m string   metrics listen address
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api/",
//	  "request_timeout": "15s",
//	  "database_path": "session.db",
//	  "log_level": "info",
//	  "metrics_addr": ":9100"
//	}
package config
