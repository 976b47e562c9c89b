package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Other arguments (the CLI command and its own flags) are filtered out first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the JobTrack API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenFile, "k", cfg.TokenFile, "path of the cached access token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
