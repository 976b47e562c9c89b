package config

import (
	"os"
	"path/filepath"
	"time"
)

// Flags lists every command-line flag owned by this package, so callers can
// strip them before parsing their own arguments.
var Flags = []string{"-s", "-t", "-k", "-c", "-config", "--config"}

// Config holds runtime settings for the JobTrack CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenFile      string
}

// userConfigDir is a seam for tests.
var userConfigDir = os.UserConfigDir

// DefaultTokenFile is <user config dir>/jobtrack/token, or a file in the
// working directory when the user config dir is unknown.
func DefaultTokenFile() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ".jobtrack-token"
	}
	return filepath.Join(dir, "jobtrack", "token")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = DefaultTokenFile()
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
