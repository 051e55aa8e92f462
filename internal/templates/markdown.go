package templates

import (
	"bytes"
	"html/template"

	bm "github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	md     = goldmark.New()
	policy = bm.UGCPolicy()
)

// Markdown converts markdown to sanitized HTML for use inside templates.
func Markdown(input string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
