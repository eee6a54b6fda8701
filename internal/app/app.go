// Package app provides the main application helper for the generator.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/opgen/internal/dialect"
	"github.com/retroenv/opgen/internal/dialect/golang"
	"github.com/retroenv/opgen/internal/dialect/rust"
	"github.com/retroenv/opgen/internal/emitter"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("opgen", log.String("version", buildinfo.Version(version, commit, date)))
}

// InitializeDialect returns the dialect implementation for the output
// language name.
// nolint: ireturn
func InitializeDialect(name string) (dialect.Dialect, error) {
	switch strings.ToLower(name) {
	case dialect.Golang:
		return golang.New(), nil
	case dialect.Rust:
		return rust.New(), nil
	default:
		return nil, fmt.Errorf("unsupported output language '%s'", name)
	}
}

// ArtifactForMode returns the artifact that an emit mode generates.
func ArtifactForMode(mode options.Mode) (emitter.Artifact, error) {
	switch mode {
	case options.EmitEnum:
		return emitter.Enum, nil
	case options.EmitDispatch:
		return emitter.Dispatch, nil
	case options.EmitOpcodeStubs:
		return emitter.OpcodeStubs, nil
	case options.EmitAddressingStubs:
		return emitter.AddressingStubs, nil
	default:
		return 0, fmt.Errorf("mode '%s' does not emit an artifact", mode)
	}
}

// EmitterOptions converts the program options to emitter options.
func EmitterOptions(opts options.Program) emitter.Options {
	emitterOpts := emitter.NewOptions()
	emitterOpts.Header = !opts.NoHeader
	emitterOpts.ExtraCycle = dialect.ExtraCycleDefault(strings.ToLower(opts.Dialect))
	switch {
	case opts.ExtraCycle:
		emitterOpts.ExtraCycle = true
	case opts.NoExtraCycle:
		emitterOpts.ExtraCycle = false
	}
	emitterOpts.Format = !opts.NoFormat
	emitterOpts.Package = opts.Package
	return emitterOpts
}
