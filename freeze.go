package frost

import (
	"context"
	"log/slog"

	osfs "github.com/3-lines-studio/frost/internal/adapters/fs"
	"github.com/3-lines-studio/frost/internal/core"
	"github.com/3-lines-studio/frost/internal/usecase"
)

const DefaultOutputDir = "build"

type FreezerConfig struct {
	OutputDir string
	// KeepExtraFiles leaves files this run did not write in OutputDir.
	// By default they are removed once every route has been frozen.
	KeepExtraFiles bool
	// Ignore lists path.Match globs of files never removed, matched against
	// the slash path relative to OutputDir and against the base name.
	Ignore []string
	Logger *slog.Logger
}

type FrozenFile = usecase.FrozenFile

type FreezeResult struct {
	OutputDir string
	Files     []FrozenFile
	Static    []FrozenFile
	Removed   []string
}

type Freezer struct {
	app     *App
	cfg     FreezerConfig
	service *usecase.FreezeService
}

func NewFreezer(app *App, cfg FreezerConfig) *Freezer {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Logger == nil {
		cfg.Logger = app.logger
	}
	return &Freezer{
		app:     app,
		cfg:     cfg,
		service: usecase.NewFreezeService(osfs.NewOSFileSystem(), cfg.Logger),
	}
}

// Routes reads the app's route table at call time.
func (f *Freezer) Routes() []string {
	return f.app.Routes()
}

// OutputPath is the file a route is frozen to, relative to the output dir.
func (f *Freezer) OutputPath(route string) string {
	return core.OutputPath(route)
}

// Freeze writes every route to the output directory. On failure the result
// still lists what was written before the error, which is a *FreezeError
// when a specific route or file is to blame.
func (f *Freezer) Freeze(ctx context.Context) (*FreezeResult, error) {
	output := f.service.Freeze(ctx, f.app, usecase.FreezeInput{
		OutputDir:        f.cfg.OutputDir,
		RemoveExtraFiles: !f.cfg.KeepExtraFiles,
		Ignore:           f.cfg.Ignore,
	})

	result := &FreezeResult{
		OutputDir: f.cfg.OutputDir,
		Files:     output.Files,
		Static:    output.Static,
		Removed:   output.Removed,
	}
	return result, output.Error
}

// Freeze is shorthand for NewFreezer(app, FreezerConfig{OutputDir: outputDir}).Freeze(ctx).
func Freeze(ctx context.Context, app *App, outputDir string) (*FreezeResult, error) {
	return NewFreezer(app, FreezerConfig{OutputDir: outputDir}).Freeze(ctx)
}
