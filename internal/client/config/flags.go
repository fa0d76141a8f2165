package config

import (
	"flag"
	"os"
	"time"

	"github.com/agrivision/agrivision/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the advisory backend (default from Config)
//	-b string   path of the local database file
//	-t int      weather cache TTL in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the advisory backend")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "path of the local database file")
	cacheTTL := fs.Int("t", int(cfg.WeatherCacheTTL.Seconds()), "weather cache TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.WeatherCacheTTL = time.Duration(*cacheTTL) * time.Second
}
