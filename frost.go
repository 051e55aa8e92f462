// Package frost renders a small route table of templates, serves it over HTTP
// and freezes it into a directory of static files.
package frost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	adapterhttp "github.com/3-lines-studio/frost/internal/adapters/http"
	"github.com/3-lines-studio/frost/internal/core"
	"github.com/3-lines-studio/frost/internal/templates"
	"github.com/3-lines-studio/frost/internal/usecase"
)

const staticPrefix = "/static/"

var (
	ErrNotFound       = core.ErrNotFound
	ErrDuplicateRoute = core.ErrDuplicateRoute
	ErrInvalidRoute   = core.ErrInvalidRoute
)

type FreezeError = core.FreezeError

// Renderer turns a template name into document bytes.
type Renderer = core.Renderer

// HandlerFunc produces a document body. It receives no request data: every
// route must render the same way when frozen as when served.
type HandlerFunc = core.HandlerFunc

type DataLoader func(ctx context.Context) (any, error)

type Route struct {
	Pattern  string
	Template string
	Data     DataLoader
	Handler  HandlerFunc
}

type PageOption func(*Route)

func WithData(loader DataLoader) PageOption {
	return func(r *Route) {
		r.Data = loader
	}
}

// Page routes pattern to the named template.
func Page(pattern string, template string, opts ...PageOption) Route {
	route := Route{
		Pattern:  pattern,
		Template: template,
	}
	for _, opt := range opts {
		opt(&route)
	}
	return route
}

// Func routes pattern to an arbitrary document producer.
func Func(pattern string, handler HandlerFunc) Route {
	return Route{
		Pattern: pattern,
		Handler: handler,
	}
}

type Config struct {
	// SiteFS holds templates/*.html and an optional static/ directory.
	SiteFS fs.FS
	// Renderer overrides the template renderer built from SiteFS.
	Renderer Renderer
	// Dev shows error details on error pages.
	Dev    bool
	Logger *slog.Logger
}

type Router interface {
	http.Handler
	Handle(pattern string, handler http.Handler)
}

type App struct {
	renderer Renderer
	routes   *core.RouteTable
	pages    *usecase.PageService
	static   fs.FS
	isDev    bool
	logger   *slog.Logger
}

// New builds an application from cfg and registers routes. Template parse
// errors, invalid patterns and duplicate patterns are reported here rather
// than at request time.
func New(cfg Config, routes ...Route) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		renderer: cfg.Renderer,
		routes:   core.NewRouteTable(),
		isDev:    cfg.Dev,
		logger:   logger,
	}
	app.pages = usecase.NewPageService(app.routes)

	if cfg.SiteFS != nil {
		if app.renderer == nil {
			r, err := newTemplateRenderer(cfg.SiteFS)
			if err != nil {
				return nil, err
			}
			if r != nil {
				app.renderer = r
			}
		}

		static, err := staticFS(cfg.SiteFS)
		if err != nil {
			return nil, err
		}
		app.static = static
	}

	for _, route := range routes {
		if err := app.Register(route); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func MustNew(cfg Config, routes ...Route) *App {
	app, err := New(cfg, routes...)
	if err != nil {
		panic(fmt.Sprintf("frost: %v", err))
	}
	return app
}

func newTemplateRenderer(siteFS fs.FS) (*templates.Renderer, error) {
	matches, err := fs.Glob(siteFS, templates.Pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning site templates: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	r, err := templates.New(siteFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load site templates: %w", err)
	}
	return r, nil
}

func staticFS(siteFS fs.FS) (fs.FS, error) {
	info, err := fs.Stat(siteFS, "static")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading static directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil
	}
	return fs.Sub(siteFS, "static")
}

// Register adds route to the app. Patterns under /static are rejected: the
// asset handler owns that prefix over HTTP and the freezer writes static files
// there.
func (a *App) Register(route Route) error {
	if p := core.NormalizePath(route.Pattern); p == strings.TrimSuffix(staticPrefix, "/") || strings.HasPrefix(p, staticPrefix) {
		return fmt.Errorf("route %q: %w: %s is reserved for static files", route.Pattern, ErrInvalidRoute, staticPrefix)
	}

	handler, err := a.bind(route)
	if err != nil {
		return err
	}

	if err := a.routes.Add(core.Route{Pattern: route.Pattern, Handler: handler}); err != nil {
		return err
	}

	a.logger.Debug("registered route", "pattern", core.NormalizePath(route.Pattern), "template", route.Template)
	return nil
}

func (a *App) bind(route Route) (HandlerFunc, error) {
	switch {
	case route.Handler != nil && route.Template != "":
		return nil, fmt.Errorf("route %q: %w: both template and handler set", route.Pattern, ErrInvalidRoute)
	case route.Handler != nil:
		return route.Handler, nil
	case route.Template == "":
		return nil, fmt.Errorf("route %q: %w: no template or handler", route.Pattern, ErrInvalidRoute)
	case a.renderer == nil:
		return nil, fmt.Errorf("route %q: %w: no renderer for template %q", route.Pattern, ErrInvalidRoute, route.Template)
	}

	renderer := a.renderer
	name := route.Template
	loader := route.Data

	return func(ctx context.Context) ([]byte, error) {
		var data any
		if loader != nil {
			var err error
			data, err = loader(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to load data for %s: %w", name, err)
			}
		}
		return renderer.Render(name, data)
	}, nil
}

// Routes lists registered patterns in registration order.
func (a *App) Routes() []string {
	return a.routes.Patterns()
}

// Render produces the document for path, or ErrNotFound.
func (a *App) Render(ctx context.Context, path string) ([]byte, error) {
	output := a.pages.ServePage(ctx, usecase.ServePageInput{
		Method:      http.MethodGet,
		RequestPath: path,
	})

	if output.Action == core.ActionNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if output.Error != nil {
		return nil, fmt.Errorf("rendering %s: %w", output.Route, output.Error)
	}
	return output.Body, nil
}

// StaticFS returns the site's static/ directory, or nil.
func (a *App) StaticFS() fs.FS {
	return a.static
}

func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(adapterhttp.RequestLogger(a.logger))
	return a.Wrap(r)
}

// Wrap mounts the static handler and a catch-all page handler on router.
// Pages are looked up per request, so routes registered later are served
// without rebuilding the router.
func (a *App) Wrap(router Router) http.Handler {
	if router == nil {
		panic("frost: nil router passed to Wrap; use app.Handler()")
	}

	pages := adapterhttp.NewPageHandler(a.pages, a.isDev, a.logger)
	assets := adapterhttp.NewAssetHandler(a.static, staticPrefix, http.HandlerFunc(pages.ServeNotFound))

	staticPattern, appPattern := staticPrefix+"*", "/*"
	if _, ok := router.(*http.ServeMux); ok {
		staticPattern, appPattern = staticPrefix, "/"
	}

	router.Handle(staticPattern, assets)
	router.Handle(appPattern, pages)

	return router
}
