package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/frost"
	"github.com/3-lines-studio/frost/internal/adapters/cli"
	"github.com/3-lines-studio/frost/internal/adapters/env"
	"github.com/3-lines-studio/frost/site"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, env.Load(), cli.NewOutput()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg env.Config, output *cli.Output) error {
	logger := cfg.NewLogger()
	if cfg.NoColor {
		output.DisableColors()
	}
	output.PrintHeader("Frost Freeze")

	app, err := site.NewApp(cfg.Dev, logger)
	if err != nil {
		output.PrintError("Failed to load site: %v", err)
		return err
	}

	report := cli.NewFreezeReport(output, cfg.OutputDir)
	freezer := frost.NewFreezer(app, frost.FreezerConfig{
		OutputDir:      cfg.OutputDir,
		KeepExtraFiles: cfg.KeepExtraFiles,
		Logger:         logger,
	})

	result, err := freezer.Freeze(ctx)
	for _, f := range result.Files {
		report.AddPage(f.Route, f.Path, f.Size)
	}
	for _, f := range result.Static {
		report.AddStatic(f.Route, f.Path, f.Size)
	}
	for _, p := range result.Removed {
		report.AddRemoved(p)
	}
	if err != nil {
		report.SetError(err)
	}
	report.Render()

	if report.HasFailures() {
		return err
	}
	return nil
}
