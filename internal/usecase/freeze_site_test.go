package usecase

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/3-lines-studio/frost/internal/adapters/fs"
	"github.com/3-lines-studio/frost/internal/core"
)

type fakeSite struct {
	routes []string
	pages  map[string]string
	errs   map[string]error
	static iofs.FS
	calls  []string
}

func (s *fakeSite) Routes() []string {
	return s.routes
}

func (s *fakeSite) Render(_ context.Context, path string) ([]byte, error) {
	s.calls = append(s.calls, path)
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	body, ok := s.pages[path]
	if !ok {
		return nil, core.ErrNotFound
	}
	return []byte(body), nil
}

func (s *fakeSite) StaticFS() iofs.FS {
	return s.static
}

type trackingWriter struct {
	failAfter int
	written   int
	closed    *int
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.failAfter {
		n := w.failAfter - w.written
		w.written = w.failAfter
		return n, errors.New("no space left on device")
	}
	w.written += len(p)
	return len(p), nil
}

func (w *trackingWriter) Close() error {
	*w.closed++
	return nil
}

// failingFS wraps the OS filesystem and fails writes to one destination.
type failingFS struct {
	*fs.OSFileSystem
	failPath string
	closed   int
}

func (f *failingFS) Create(path string) (io.WriteCloser, error) {
	if filepath.Base(filepath.Dir(path)) == f.failPath || filepath.Base(path) == f.failPath {
		return &trackingWriter{failAfter: 4, closed: &f.closed}, nil
	}
	return f.OSFileSystem.Create(path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestFreezeWritesEveryRoute(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/", "/about", "/feed.xml"},
		pages: map[string]string{
			"/":         "<html>home</html>",
			"/about":    "<html>about</html>",
			"/feed.xml": "<rss/>",
		},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	if len(result.Files) != 3 {
		t.Fatalf("expected 3 frozen files, got %d", len(result.Files))
	}

	if got := readFile(t, filepath.Join(out, "index.html")); got != "<html>home</html>" {
		t.Errorf("index.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "about", "index.html")); got != "<html>about</html>" {
		t.Errorf("about/index.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "feed.xml")); got != "<rss/>" {
		t.Errorf("feed.xml = %q", got)
	}
}

func TestFreezeRenderErrorStopsRun(t *testing.T) {
	out := t.TempDir()
	boom := errors.New("template exploded")
	site := &fakeSite{
		routes: []string{"/", "/broken", "/after"},
		pages: map[string]string{
			"/":      "<html>home</html>",
			"/after": "<html>after</html>",
		},
		errs: map[string]error{"/broken": boom},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})

	if !errors.Is(result.Error, boom) {
		t.Fatalf("expected render error, got %v", result.Error)
	}

	var ferr *core.FreezeError
	if !errors.As(result.Error, &ferr) {
		t.Fatalf("expected *core.FreezeError, got %T", result.Error)
	}
	if ferr.Route != "/broken" || ferr.Op != "render" {
		t.Errorf("unexpected error details %+v", ferr)
	}

	if got := readFile(t, filepath.Join(out, "index.html")); got != "<html>home</html>" {
		t.Errorf("earlier output should be kept, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "after", "index.html")); !os.IsNotExist(err) {
		t.Error("routes after the failure must not be written")
	}
	if len(site.calls) != 2 {
		t.Errorf("expected render to stop after 2 calls, got %v", site.calls)
	}
}

func TestFreezeWriteErrorClosesFile(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/", "/about"},
		pages: map[string]string{
			"/":      "<html>home</html>",
			"/about": "<html>about page</html>",
		},
	}

	fsys := &failingFS{OSFileSystem: fs.NewOSFileSystem(), failPath: "about"}
	svc := NewFreezeService(fsys, nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out})

	var ferr *core.FreezeError
	if !errors.As(result.Error, &ferr) {
		t.Fatalf("expected *core.FreezeError, got %v", result.Error)
	}
	if ferr.Op != "write" || ferr.Route != "/about" {
		t.Errorf("unexpected error details %+v", ferr)
	}
	if ferr.Path != filepath.Join(out, "about", "index.html") {
		t.Errorf("error should name the failing path, got %q", ferr.Path)
	}
	if fsys.closed != 1 {
		t.Errorf("expected failing file to be closed once, got %d", fsys.closed)
	}
	if len(result.Files) != 1 {
		t.Errorf("expected 1 file recorded before failure, got %d", len(result.Files))
	}
}

func TestFreezeIsIdempotent(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/"},
		pages:  map[string]string{"/": "<html>same</html>"},
	}
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)

	first := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})
	if first.Error != nil {
		t.Fatalf("first freeze failed: %v", first.Error)
	}
	a := readFile(t, filepath.Join(out, "index.html"))

	second := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})
	if second.Error != nil {
		t.Fatalf("second freeze failed: %v", second.Error)
	}
	b := readFile(t, filepath.Join(out, "index.html"))

	if a != b {
		t.Errorf("expected identical output, got %q and %q", a, b)
	}
	if len(second.Removed) != 0 {
		t.Errorf("second run should remove nothing, removed %v", second.Removed)
	}
}

func TestFreezeRemovesExtraFiles(t *testing.T) {
	out := t.TempDir()
	for _, rel := range []string{"stale.html", "old/index.html", ".keep", "CNAME"} {
		full := filepath.Join(out, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	site := &fakeSite{
		routes: []string{"/"},
		pages:  map[string]string{"/": "<html>home</html>"},
	}
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{
		OutputDir:        out,
		RemoveExtraFiles: true,
		Ignore:           []string{".*", "CNAME"},
	})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	if len(result.Removed) != 2 {
		t.Errorf("expected 2 removed files, got %v", result.Removed)
	}
	for _, rel := range []string{"stale.html", "old/index.html"} {
		if _, err := os.Stat(filepath.Join(out, rel)); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", rel)
		}
	}
	for _, rel := range []string{".keep", "CNAME", "index.html"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("%s should be kept: %v", rel, err)
		}
	}
}

func TestFreezePrunesEmptyDirectories(t *testing.T) {
	out := t.TempDir()
	for _, rel := range []string{"old/index.html", "old/deep/page/index.html", ".git/config"} {
		full := filepath.Join(out, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(out, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	site := &fakeSite{
		routes: []string{"/", "/blog/post"},
		pages: map[string]string{
			"/":          "<html>home</html>",
			"/blog/post": "<html>post</html>",
		},
	}
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{
		OutputDir:        out,
		RemoveExtraFiles: true,
		Ignore:           []string{".git"},
	})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	for _, rel := range []string{"old", "empty"} {
		if _, err := os.Stat(filepath.Join(out, rel)); !os.IsNotExist(err) {
			t.Errorf("%s should have been pruned", rel)
		}
	}
	for _, rel := range []string{"index.html", "blog/post/index.html", ".git/config"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s should be kept: %v", rel, err)
		}
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output directory must survive pruning: %v", err)
	}
	if len(result.Removed) != 2 {
		t.Errorf("expected 2 removed files, got %v", result.Removed)
	}
}

func TestFreezeRejectsSharedOutputFile(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/", "/index.html"},
		pages: map[string]string{
			"/":           "<html>home</html>",
			"/index.html": "OTHER",
		},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})

	var ferr *core.FreezeError
	if !errors.As(result.Error, &ferr) {
		t.Fatalf("expected *core.FreezeError, got %v", result.Error)
	}
	if ferr.Op != "write" || ferr.Route != "/index.html" || !errors.Is(ferr, core.ErrDuplicateRoute) {
		t.Errorf("unexpected error details %+v", ferr)
	}
	if got := readFile(t, filepath.Join(out, "index.html")); got != "<html>home</html>" {
		t.Errorf("first route's output must not be replaced, got %q", got)
	}
	if len(site.calls) != 1 {
		t.Errorf("colliding route must not be rendered, calls %v", site.calls)
	}
}

func TestFreezeRejectsRouteShadowingStaticFile(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/static/site.css"},
		pages:  map[string]string{"/static/site.css": "ROUTE-CSS"},
		static: fstest.MapFS{
			"site.css": {Data: []byte("body{}")},
		},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out})

	var ferr *core.FreezeError
	if !errors.As(result.Error, &ferr) {
		t.Fatalf("expected *core.FreezeError, got %v", result.Error)
	}
	if ferr.Op != "copy" || !errors.Is(ferr, core.ErrDuplicateRoute) {
		t.Errorf("unexpected error details %+v", ferr)
	}
	if got := readFile(t, filepath.Join(out, "static", "site.css")); got != "ROUTE-CSS" {
		t.Errorf("static copy must not overwrite the route output, got %q", got)
	}
}

func TestFreezeKeysOutputByCleanPath(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/a/./b"},
		pages:  map[string]string{"/a/./b": "<html>b</html>"},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	if len(result.Removed) != 0 {
		t.Errorf("a file written this run must not be removed, removed %v", result.Removed)
	}
	if got := readFile(t, filepath.Join(out, "a", "b", "index.html")); got != "<html>b</html>" {
		t.Errorf("a/b/index.html = %q", got)
	}
}

func TestFreezeKeepsExtraFilesWhenDisabled(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "stale.html")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	site := &fakeSite{
		routes: []string{"/"},
		pages:  map[string]string{"/": "<html>home</html>"},
	}
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	if _, err := os.Stat(stale); err != nil {
		t.Errorf("stale file should be kept: %v", err)
	}
}

func TestFreezeCopiesStaticFiles(t *testing.T) {
	out := t.TempDir()
	site := &fakeSite{
		routes: []string{"/"},
		pages:  map[string]string{"/": "<html>home</html>"},
		static: fstest.MapFS{
			"css/site.css": {Data: []byte("body{}")},
			"robots.txt":   {Data: []byte("User-agent: *")},
		},
	}

	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), site, FreezeInput{OutputDir: out, RemoveExtraFiles: true})
	if result.Error != nil {
		t.Fatalf("Freeze failed: %v", result.Error)
	}

	if len(result.Static) != 2 {
		t.Fatalf("expected 2 static files, got %d", len(result.Static))
	}
	if got := readFile(t, filepath.Join(out, "static", "css", "site.css")); got != "body{}" {
		t.Errorf("site.css = %q", got)
	}
	if len(result.Removed) != 0 {
		t.Errorf("static files must not be treated as extra, removed %v", result.Removed)
	}
}

func TestFreezeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	site := &fakeSite{
		routes: []string{"/"},
		pages:  map[string]string{"/": "<html>home</html>"},
	}
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(ctx, site, FreezeInput{OutputDir: t.TempDir()})

	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", result.Error)
	}
	if len(site.calls) != 0 {
		t.Errorf("no route should be rendered after cancellation, got %v", site.calls)
	}
}

func TestFreezeRequiresOutputDir(t *testing.T) {
	svc := NewFreezeService(fs.NewOSFileSystem(), nil)
	result := svc.Freeze(context.Background(), &fakeSite{}, FreezeInput{})
	if result.Error == nil {
		t.Error("expected error for empty output directory")
	}
}

func TestIgnored(t *testing.T) {
	tests := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"CNAME", []string{"CNAME"}, true},
		{"sub/.gitkeep", []string{".*"}, true},
		{"assets/app.js", []string{"assets/*"}, true},
		{"index.html", []string{"*.txt"}, false},
		{"index.html", nil, false},
	}

	for _, tt := range tests {
		if got := ignored(tt.rel, tt.patterns); got != tt.want {
			t.Errorf("ignored(%q, %v) = %v, want %v", tt.rel, tt.patterns, got, tt.want)
		}
	}
}
