// Package pipeline orchestrates the generator workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/opgen/internal/app"
	"github.com/retroenv/opgen/internal/emitter"
	"github.com/retroenv/opgen/internal/grid"
	"github.com/retroenv/opgen/internal/inspect"
	"github.com/retroenv/opgen/internal/loader"
	"github.com/retroenv/opgen/internal/opcode"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/opgen/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete generator workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
	ack    inspect.Acknowledger
}

// New creates a new generator pipeline. The acknowledger is used by the
// inspect mode, nil prints all slots without waiting.
func New(logger *log.Logger, ack inspect.Acknowledger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
		ack:    ack,
	}
}

// Execute loads the grids, builds the opcode table and runs the selected mode.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (*opcode.Table, error) {
	set, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading grids: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return p.ExecuteWithGrids(ctx, set, opts, writer)
}

// ExecuteWithGrids runs the pipeline with pre-loaded grids.
// This is useful for testing and programmatic usage where the grids are already in memory.
func (p *Pipeline) ExecuteWithGrids(ctx context.Context, set grid.Set, opts options.Program,
	writer io.Writer) (*opcode.Table, error) {

	table, err := opcode.Build(set)
	if err != nil {
		return nil, fmt.Errorf("building opcode table: %w", err)
	}
	p.logger.Debug("Built opcode table", log.Int("opcodes", table.Len()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Mode == options.Inspect {
		if err := inspect.New(writer, p.ack).Print(table); err != nil {
			return nil, fmt.Errorf("inspecting opcode table: %w", err)
		}
		return table, nil
	}

	if opts.Verify {
		if err := verification.Verify(p.logger, table, opts.Strict); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.emit(opts, table, writer); err != nil {
		return nil, err
	}
	return table, nil
}

// emit writes the artifact of the mode.
func (p *Pipeline) emit(opts options.Program, table *opcode.Table, writer io.Writer) error {
	artifact, err := app.ArtifactForMode(opts.Mode)
	if err != nil {
		return err
	}
	d, err := app.InitializeDialect(opts.Dialect)
	if err != nil {
		return fmt.Errorf("initializing dialect: %w", err)
	}

	p.printInfo(opts, artifact, table)

	em := emitter.New(p.logger, d, app.EmitterOptions(opts))
	return em.Emit(writer, artifact, table)
}

// printInfo prints information about the artifact being generated.
func (p *Pipeline) printInfo(opts options.Program, artifact emitter.Artifact, table *opcode.Table) {
	if opts.Quiet {
		return
	}
	p.logger.Info("Generating code",
		log.String("artifact", artifact.String()),
		log.String("language", opts.Dialect),
		log.Int("opcodes", table.Len()),
	)
}
