// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Generated code that
// is printed on the console is not interleaved with informational messages,
// only errors are logged in that case unless debugging is enabled.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet, ConsoleArtifact(opts):
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ConsoleArtifact returns whether the run prints a generated artifact on the
// console.
func ConsoleArtifact(opts options.Program) bool {
	return opts.Output == "" && opts.Mode != "" && opts.Mode != options.Inspect
}
