// Package config defines process configuration and its loading.
//
// Conventions:
//   - New returns a Config with defaults; Load layers file and env on top.
//   - File names are resolved against DataDir unless absolute.
//   - Errors from this package wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Store drivers.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Roster encodings.
const (
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DataDir is the base directory for relative data file names.
	DataDir string `koanf:"data_dir"`

	RosterFile   string `koanf:"roster_file"`
	CustomerFile string `koanf:"customer_file"`
	SquadFile    string `koanf:"squad_file"`

	// RosterEncoding is the character set of the roster file.
	RosterEncoding string `koanf:"roster_encoding"`

	// StoreDriver selects the squad and customer backend: csv or sqlite.
	StoreDriver string `koanf:"store_driver"`
	SQLitePath  string `koanf:"sqlite_path"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MCPPath is where serve mounts the streamable MCP endpoint.
	MCPPath string `koanf:"mcp_path"`

	CORSAllowOrigins []string `koanf:"cors_allow_origins"`

	// RateLimit* bound requests per client IP in serve mode.
	RateLimitEnabled       bool `koanf:"rate_limit_enabled"`
	RateLimitRequests      int  `koanf:"rate_limit_requests"`
	RateLimitWindowSeconds int  `koanf:"rate_limit_window_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		DataDir:                ".",
		RosterFile:             "all_players.csv",
		CustomerFile:           "customer_database.csv",
		SquadFile:              "created_teams.csv",
		RosterEncoding:         EncodingLatin1,
		StoreDriver:            StoreCSV,
		SQLitePath:             "nsl.db",
		Addr:                   ":9080",
		MCPPath:                "/mcp",
		CORSAllowOrigins:       []string{"*"},
		RateLimitEnabled:       true,
		RateLimitRequests:      120,
		RateLimitWindowSeconds: 60,
	}
}

// Path resolves name against DataDir.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// RateLimitWindow returns the rate limit window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// Validate checks the values Load cannot repair.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q not in text|json", ErrInvalidConfig, c.LogFormat)
	}
	switch c.StoreDriver {
	case StoreCSV:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store_driver %q not in csv|sqlite", ErrInvalidConfig, c.StoreDriver)
	}
	switch c.RosterEncoding {
	case EncodingLatin1, EncodingUTF8:
	default:
		return fmt.Errorf("%w: roster_encoding %q not in latin-1|utf-8", ErrInvalidConfig, c.RosterEncoding)
	}
	if c.RateLimitEnabled && (c.RateLimitRequests <= 0 || c.RateLimitWindowSeconds <= 0) {
		return fmt.Errorf("%w: rate limit requests and window must be positive", ErrInvalidConfig)
	}
	if c.MCPPath == "" || c.MCPPath[0] != '/' {
		return fmt.Errorf("%w: mcp_path must start with /", ErrInvalidConfig)
	}
	return nil
}
