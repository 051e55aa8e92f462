package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

const Pattern = "templates/*.html"

var ErrTemplateNotFound = errors.New("template not found")

// Renderer executes html/template files parsed once from a site filesystem.
// Every file under templates/ is parsed into one set, so pages can include
// each other by file name.
type Renderer struct {
	set *template.Template
}

func New(fsys fs.FS) (*Renderer, error) {
	if fsys == nil {
		return nil, errors.New("templates: nil filesystem")
	}

	set, err := template.New("").Funcs(Funcs()).ParseFS(fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Pattern, err)
	}

	return &Renderer{set: set}, nil
}

func (r *Renderer) Render(name string, data any) ([]byte, error) {
	t := r.set.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"lower":    strings.ToLower,
		"upper":    strings.ToUpper,
	}
}
