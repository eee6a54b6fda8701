// Package main implements the main entry point for a table driven opcode code generator
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/opgen/internal/app"
	"github.com/retroenv/opgen/internal/cli"
	"github.com/retroenv/opgen/internal/config"
	"github.com/retroenv/opgen/internal/inspect"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/opgen/internal/pipeline"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Generating failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if opts.Mode == options.Inspect {
		var ack inspect.Acknowledger
		if !opts.NoWait {
			ack = inspect.NewAcknowledger(os.Stdin)
		}
		_, err := pipeline.New(logger, ack).Execute(ctx, opts, os.Stdout)
		return err
	}

	// the artifact is written only after it was generated without errors
	buf := &bytes.Buffer{}
	if _, err := pipeline.New(logger, nil).Execute(ctx, opts, buf); err != nil {
		return err
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", opts.Output, err)
	}
	logger.Info("Generated file", log.String("file", opts.Output))
	return nil
}
