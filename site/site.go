// Package site is the bundled frost website: a single index page.
package site

import (
	"log/slog"

	"github.com/3-lines-studio/frost"
)

// Routes lists the pages of the site.
func Routes() []frost.Route {
	return []frost.Route{
		frost.Page("/", "index.html"),
	}
}

func NewApp(dev bool, logger *slog.Logger) (*frost.App, error) {
	return frost.New(frost.Config{
		SiteFS: FS,
		Dev:    dev,
		Logger: logger,
	}, Routes()...)
}
