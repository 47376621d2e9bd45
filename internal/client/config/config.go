package config

import "time"

// Config holds runtime settings for the social feed CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. "http://127.0.0.1:8000/api".
//   - StatePath: SQLite file backing the durable store.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
//   - RequestTimeout: per-request limit; zero leaves the transport default.
type Config struct {
	APIBaseURL     string
	StatePath      string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.StatePath = "socialfeed.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
