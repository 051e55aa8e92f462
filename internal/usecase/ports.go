package usecase

import (
	"context"
	iofs "io/fs"

	"github.com/3-lines-studio/frost/internal/adapters/fs"
	"github.com/3-lines-studio/frost/internal/core"
)

// Site is the view of a web application the freezer needs.
type Site interface {
	Routes() []string
	Render(ctx context.Context, path string) ([]byte, error)
	StaticFS() iofs.FS
}

type RouteLookup interface {
	Lookup(path string) (core.Route, bool)
}

type FileSystem = fs.FileSystem
