// Package config loads runtime configuration for the social feed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-d string   path of the durable state file
//	-l string   log level (debug, info, warn, error)
//	-t string   request timeout, e.g. "10s" (0 keeps the transport default)
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "state_path": "socialfeed.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "request_timeout": "10s"
//	}
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
