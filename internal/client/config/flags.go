package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-d string   local database file
//	-t int      request timeout in seconds
//	-h string   deployment hostname for the API heuristic
//	-v          debug logging
//
// Only these flags are read from os.Args; -c belongs to the JSON loader.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.Hostname, "h", cfg.Hostname, "deployment hostname")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
