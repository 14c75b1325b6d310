// Package config provides configuration management for bgap.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination, append
//   - General: jobs_number, batch_size, parser_pool_size
//
// Runtime-only fields (CLI flags only):
//   - Filters: marker, kingdoms, tolerant (per-command, also set by presets)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BGAP_ prefix with underscores for nesting:
//
//	BGAP_LOG_LEVEL=info
//	BGAP_JOBS_NUMBER=8
//	BGAP_BATCH_SIZE=1000
package config

import (
	"runtime"
)

// Config represents the complete bgap configuration.
type Config struct {
	// Filters describes the row filters applied while scanning records
	// files. Runtime-only: set per run from CLI flags or a preset.
	Filters FilterConfig

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// BatchSize is the number of taxa handed to one worker task during
	// analysis. The authority import derives its transaction size from it.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// ParserPoolSize is the number of scientific-name parser instances kept
	// around for name quality control.
	ParserPoolSize int `mapstructure:"parser_pool_size" yaml:"parser_pool_size"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// FilterConfig holds the record filters of a single run. The same
// pipeline serves every records-file consumer: empty values switch a
// filter off.
type FilterConfig struct {
	// Marker keeps only rows whose marker_code matches this gene code.
	// Index building compares exactly; extraction ignores case.
	Marker string

	// Kingdoms keeps only rows whose kingdom is in this set.
	// Comparison ignores case.
	Kingdoms []string

	// Tolerant strips embedded tabs, newlines and quote characters from
	// fields before parsing. Needed for some GenBank-derived files.
	Tolerant bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
	// Append adds to an existing log file rather than truncating it.
	Append bool `mapstructure:"append"      yaml:"append"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber:     runtime.NumCPU(), // Default to number of CPU threads
		BatchSize:      1000,
		ParserPoolSize: 4,
	}

	return res
}
