package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptFilterMarker sets the gene code records must match to be indexed.
// Runtime-only field - not in ToOptions().
func OptFilterMarker(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Marker", s) {
			c.Filters.Marker = s
		}
	}
}

// OptFilterKingdoms sets the kingdoms records must belong to.
// Empty slice means no kingdom filtering.
// Runtime-only field - not in ToOptions().
func OptFilterKingdoms(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Filters.Kingdoms = ss
		}
	}
}

// OptFilterTolerant enables sanitization of embedded control and quote
// characters in record fields.
// Runtime-only field - not in ToOptions().
func OptFilterTolerant(b bool) Option {
	return func(c *Config) {
		c.Filters.Tolerant = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptLogAppend keeps the previous content of the log file, new entries
// are added at the end.
func OptLogAppend(b bool) Option {
	return func(c *Config) {
		c.Log.Append = b
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptBatchSize sets the number of taxa processed per worker task.
func OptBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.BatchSize = i
		}
	}
}

// OptParserPoolSize sets the number of pooled scientific-name parsers.
func OptParserPoolSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Parser Pool Size", i) {
			c.ParserPoolSize = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
