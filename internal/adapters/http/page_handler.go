package http

import (
	"bytes"
	"html"
	"io"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/frost/internal/core"
	"github.com/3-lines-studio/frost/internal/usecase"
)

type PageHandler struct {
	service *usecase.PageService
	isDev   bool
	logger  *slog.Logger
}

func NewPageHandler(service *usecase.PageService, isDev bool, logger *slog.Logger) *PageHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PageHandler{
		service: service,
		isDev:   isDev,
		logger:  logger,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	output := h.service.ServePage(req.Context(), usecase.ServePageInput{
		Method:      req.Method,
		RequestPath: req.URL.Path,
	})

	if output.Error != nil {
		h.logger.Error("render failed", "route", output.Route, "path", req.URL.Path, "error", output.Error)
		h.serveError(w, http.StatusInternalServerError, output.Error.Error())
		return
	}

	switch output.Action {
	case core.ActionNotFound:
		h.ServeNotFound(w, req)

	case core.ActionMethodNotAllowed:
		w.Header().Set("Allow", core.AllowedMethods)
		h.serveError(w, http.StatusMethodNotAllowed, req.Method+" "+req.URL.Path)

	case core.ActionRender:
		w.Header().Set("Content-Type", output.ContentType)
		w.WriteHeader(output.Status)
		if req.Method != http.MethodHead {
			_, _ = w.Write(output.Body)
		}
	}
}

func (h *PageHandler) ServeNotFound(w http.ResponseWriter, req *http.Request) {
	h.serveError(w, http.StatusNotFound, "no route matches "+req.URL.Path)
}

func (h *PageHandler) serveError(w http.ResponseWriter, status int, message string) {
	data := core.ErrorData{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
		IsDev:   h.isDev,
	}

	w.Header().Set("Content-Type", core.HTMLContentType)

	var buf bytes.Buffer
	if err := core.ErrorTemplate.Execute(&buf, data); err != nil {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
