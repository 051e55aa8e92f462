package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/3-lines-studio/frost/internal/core"
)

type FrozenEntry struct {
	Route string
	Path  string
	Size  int64
}

type FreezeReport struct {
	output    *Output
	startTime time.Time
	outputDir string
	pages     []FrozenEntry
	static    []FrozenEntry
	removed   []string
	err       error
}

func NewFreezeReport(output *Output, outputDir string) *FreezeReport {
	return &FreezeReport{
		output:    output,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *FreezeReport) AddPage(route, path string, size int64) {
	r.pages = append(r.pages, FrozenEntry{Route: route, Path: path, Size: size})
}

func (r *FreezeReport) AddStatic(route, path string, size int64) {
	r.static = append(r.static, FrozenEntry{Route: route, Path: path, Size: size})
}

func (r *FreezeReport) AddRemoved(path string) {
	r.removed = append(r.removed, path)
}

func (r *FreezeReport) SetError(err error) {
	r.err = err
}

func (r *FreezeReport) HasFailures() bool {
	return r.err != nil
}

func (r *FreezeReport) Render() {
	o := r.output
	duration := time.Since(r.startTime)

	o.PrintSuccess("%d pages frozen", len(r.pages))
	for _, p := range r.pages {
		o.PrintFile(fmt.Sprintf("%s -> %s (%s)", p.Route, p.Path, formatSize(p.Size)))
	}

	if len(r.static) > 0 {
		o.PrintSuccess("%d static files copied", len(r.static))
	}

	if len(r.removed) > 0 {
		o.PrintWarning("%d extra files removed", len(r.removed))
		for _, p := range r.removed {
			o.PrintFile(p)
		}
	}

	if r.err != nil {
		var ferr *core.FreezeError
		if errors.As(r.err, &ferr) {
			o.PrintError("%s failed for route %s", ferr.Op, ferr.Route)
			if ferr.Path != "" {
				o.PrintError("output: %s", ferr.Path)
			}
			o.PrintError("%v", ferr.Err)
		} else {
			o.PrintError("%v", r.err)
		}
		fmt.Fprintf(o.errOut, "\n  %s\n", o.Red("Freeze failed after "+formatDuration(duration)))
		return
	}

	o.PrintSuccess("Freeze complete in %s", formatDuration(duration))
	if r.outputDir != "" {
		fmt.Fprintf(o.out, "\n  %s\n", o.Gray("Output: "+r.outputDir))
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
