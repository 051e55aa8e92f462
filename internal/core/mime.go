package core

import (
	"path"
	"strings"
)

const HTMLContentType = "text/html; charset=utf-8"

var contentTypes = map[string]string{
	".html":  HTMLContentType,
	".htm":   HTMLContentType,
	".xml":   "application/xml",
	".rss":   "application/rss+xml",
	".atom":  "application/atom+xml",
	".txt":   "text/plain; charset=utf-8",
	".css":   "text/css",
	".js":    "application/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".eot":   "application/vnd.ms-fontobject",
}

// ContentType picks the response type for a route. Routes without an
// extension render HTML documents.
func ContentType(pattern string) string {
	ext := strings.ToLower(path.Ext(path.Base(pattern)))
	if ext == "" {
		return HTMLContentType
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
