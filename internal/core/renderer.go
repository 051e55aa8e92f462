package core

// Renderer turns a template name into document bytes.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}
