package core

import (
	"fmt"
	"path"
	"strings"
)

func NormalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// ValidateRoutePath rejects patterns the freezer could not render: every
// route must be reachable without request parameters.
func ValidateRoutePath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrInvalidRoute)
	}

	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: path must start with /", ErrInvalidRoute)
	}

	if strings.Contains(p, "?") {
		return fmt.Errorf("%w: path cannot contain query string", ErrInvalidRoute)
	}

	if strings.Contains(p, "#") {
		return fmt.Errorf("%w: path cannot contain fragment", ErrInvalidRoute)
	}

	if strings.Contains(p, "..") {
		return fmt.Errorf("%w: path cannot contain parent directory references", ErrInvalidRoute)
	}

	if strings.Contains(p, "*") {
		return fmt.Errorf("%w: path cannot contain wildcards", ErrInvalidRoute)
	}

	if strings.ContainsAny(p, "{}") {
		return fmt.Errorf("%w: path cannot contain URL parameters", ErrInvalidRoute)
	}

	if strings.Contains(p, "//") {
		return fmt.Errorf("%w: path cannot contain empty segments", ErrInvalidRoute)
	}

	if n := NormalizePath(p); path.Clean(n) != n {
		return fmt.Errorf("%w: path cannot contain . segments", ErrInvalidRoute)
	}

	return nil
}

// OutputPath maps a route pattern to a slash-separated file path relative to
// the output directory. Directory-like routes get an index.html; routes whose
// last segment carries an extension are written as-is.
func OutputPath(pattern string) string {
	p := NormalizePath(pattern)
	if p == "/" {
		return "index.html"
	}

	rel := strings.TrimPrefix(p, "/")
	if HasExtension(p) {
		return rel
	}
	return rel + "/index.html"
}

func HasExtension(pattern string) bool {
	return path.Ext(path.Base(NormalizePath(pattern))) != ""
}
