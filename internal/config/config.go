package config

import (
	"os"
)

const (
	// DefaultGlobPattern matches the raw NSE download files before renaming
	DefaultGlobPattern = "nse_100_data*.csv"
	// DefaultHeaderPrefix marks a file whose header row is already in place
	DefaultHeaderPrefix = "Date"
)

// Config holds the file selection and header detection settings
type Config struct {
	GlobPattern  string
	HeaderPrefix string
}

// New creates a new Config with values from environment variables or defaults
func New() *Config {
	return &Config{
		GlobPattern:  getenv("STOCKCSV_GLOB", DefaultGlobPattern),
		HeaderPrefix: getenv("STOCKCSV_HEADER_PREFIX", DefaultHeaderPrefix),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
