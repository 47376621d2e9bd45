package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/socialfeed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-d string   durable state file
//	-l string   log level
//	-t string   request timeout
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.StatePath, "d", cfg.StatePath, "durable state file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.String("t", cfg.RequestTimeout.String(), "request timeout, e.g. 10s")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	d, err := time.ParseDuration(*timeout)
	if err != nil {
		panic(err)
	}
	cfg.RequestTimeout = d
}
