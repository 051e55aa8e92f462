package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"

	"github.com/3-lines-studio/frost/internal/core"
)

type FreezeInput struct {
	OutputDir        string
	RemoveExtraFiles bool
	// Ignore holds path.Match globs, tested against the slash path relative
	// to OutputDir and against the file's base name.
	Ignore []string
}

type FrozenFile struct {
	Route string
	Path  string
	Size  int64
}

type FreezeOutput struct {
	Files   []FrozenFile
	Static  []FrozenFile
	Removed []string
	Error   error
}

type FreezeService struct {
	fs     FileSystem
	logger *slog.Logger
}

func NewFreezeService(fs FileSystem, logger *slog.Logger) *FreezeService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FreezeService{
		fs:     fs,
		logger: logger,
	}
}

// Freeze renders every route of site into input.OutputDir. The first failure
// stops the run; files written before it are left in place.
func (s *FreezeService) Freeze(ctx context.Context, site Site, input FreezeInput) FreezeOutput {
	var out FreezeOutput

	if input.OutputDir == "" {
		out.Error = errors.New("freeze: output directory cannot be empty")
		return out
	}

	if err := s.fs.MkdirAll(input.OutputDir, 0o755); err != nil {
		out.Error = fmt.Errorf("failed to create output directory %s: %w", input.OutputDir, err)
		return out
	}

	written := make(map[string]bool)

	for _, route := range site.Routes() {
		if err := ctx.Err(); err != nil {
			out.Error = &core.FreezeError{Route: route, Op: "render", Err: err}
			return out
		}

		rel := path.Clean(core.OutputPath(route))
		dest := filepath.Join(input.OutputDir, filepath.FromSlash(rel))

		if written[rel] {
			out.Error = &core.FreezeError{Route: route, Path: dest, Op: "write", Err: alreadyWritten(rel)}
			return out
		}

		body, err := site.Render(ctx, route)
		if err != nil {
			out.Error = &core.FreezeError{Route: route, Path: dest, Op: "render", Err: err}
			return out
		}

		if err := s.writeFile(dest, func(w io.Writer) error {
			_, err := w.Write(body)
			return err
		}); err != nil {
			out.Error = &core.FreezeError{Route: route, Path: dest, Op: "write", Err: err}
			return out
		}

		written[rel] = true
		out.Files = append(out.Files, FrozenFile{Route: route, Path: dest, Size: int64(len(body))})
		s.logger.Info("froze route", "route", route, "path", dest, "bytes", len(body))
	}

	static, err := s.copyStatic(site.StaticFS(), input.OutputDir, written)
	out.Static = static
	if err != nil {
		out.Error = err
		return out
	}

	if input.RemoveExtraFiles {
		removed, err := s.removeExtraFiles(input.OutputDir, written, input.Ignore)
		out.Removed = removed
		if err != nil {
			out.Error = err
			return out
		}
	}

	return out
}

func (s *FreezeService) copyStatic(static iofs.FS, outputDir string, written map[string]bool) ([]FrozenFile, error) {
	if static == nil {
		return nil, nil
	}

	var files []FrozenFile
	err := iofs.WalkDir(static, ".", func(name string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := path.Join("static", name)
		route := "/" + rel
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))

		if written[rel] {
			return &core.FreezeError{Route: route, Path: dest, Op: "copy", Err: alreadyWritten(rel)}
		}

		var size int64
		if err := s.writeFile(dest, func(w io.Writer) error {
			src, err := static.Open(name)
			if err != nil {
				return err
			}
			defer src.Close()

			size, err = io.Copy(w, src)
			return err
		}); err != nil {
			return &core.FreezeError{Route: route, Path: dest, Op: "copy", Err: err}
		}

		written[rel] = true
		files = append(files, FrozenFile{Route: route, Path: dest, Size: size})
		s.logger.Debug("copied static file", "route", route, "path", dest, "bytes", size)
		return nil
	})
	if err != nil {
		var ferr *core.FreezeError
		if !errors.As(err, &ferr) {
			err = fmt.Errorf("failed to walk static files: %w", err)
		}
		return files, err
	}

	return files, nil
}

// removeExtraFiles deletes files this run did not write, then prunes the
// directories left empty. Ignored files and directories, and the output
// directory itself, are kept.
func (s *FreezeService) removeExtraFiles(outputDir string, written map[string]bool, ignore []string) ([]string, error) {
	var extra, dirs []string
	err := s.fs.WalkDir(outputDir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == outputDir {
			return nil
		}

		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if ignored(rel, ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		if !written[rel] {
			extra = append(extra, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan output directory %s: %w", outputDir, err)
	}

	sort.Strings(extra)

	var removed []string
	for _, p := range extra {
		if err := s.fs.Remove(p); err != nil {
			return removed, fmt.Errorf("failed to remove extra file %s: %w", p, err)
		}
		removed = append(removed, p)
		s.logger.Info("removed extra file", "path", p)
	}

	// Walk order lists parents first; children must go before them.
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := s.fs.ReadDir(dirs[i])
		if err != nil {
			return removed, fmt.Errorf("failed to read directory %s: %w", dirs[i], err)
		}
		if len(entries) > 0 {
			continue
		}
		if err := s.fs.Remove(dirs[i]); err != nil {
			return removed, fmt.Errorf("failed to remove empty directory %s: %w", dirs[i], err)
		}
		s.logger.Debug("removed empty directory", "path", dirs[i])
	}

	return removed, nil
}

// writeFile creates dest, hands it to write and always closes it. A close
// error is returned when write itself succeeded.
func (s *FreezeService) writeFile(dest string, write func(io.Writer) error) (err error) {
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	f, err := s.fs.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return write(f)
}

func ignored(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func alreadyWritten(rel string) error {
	return fmt.Errorf("%w: %s was already written in this run", core.ErrDuplicateRoute, rel)
}
