package core

import (
	"errors"
	"fmt"
	"html/template"
)

var (
	ErrNotFound       = errors.New("route not found")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidRoute   = errors.New("invalid route")
)

// FreezeError reports which route and output file a freeze run stopped at.
type FreezeError struct {
	Route string
	Path  string
	Op    string
	Err   error
}

func (e *FreezeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("freeze %s %s: %v", e.Op, e.Route, e.Err)
	}
	return fmt.Sprintf("freeze %s %s -> %s: %v", e.Op, e.Route, e.Path, e.Err)
}

func (e *FreezeError) Unwrap() error {
	return e.Err
}

type ErrorData struct {
	Status  int
	Title   string
	Message string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    {{if .IsDev}}
    <pre>{{.Message}}</pre>
    {{else if eq .Status 404}}
    <p>The requested page does not exist.</p>
    {{else}}
    <p>An error occurred while processing your request.</p>
    {{end}}
</body>
</html>`))
