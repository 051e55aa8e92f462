package http

import (
	"errors"
	"io"
	iofs "io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/3-lines-studio/frost/internal/core"
)

// AssetHandler serves files from a static filesystem. Directories are never
// listed; misses fall through to notFound.
type AssetHandler struct {
	assetsFS iofs.FS
	prefix   string
	notFound http.Handler
}

func NewAssetHandler(assetsFS iofs.FS, prefix string, notFound http.Handler) http.Handler {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	return &AssetHandler{
		assetsFS: assetsFS,
		prefix:   prefix,
		notFound: notFound,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(req.URL.Path, h.prefix)
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || h.assetsFS == nil {
		h.notFound.ServeHTTP(w, req)
		return
	}

	f, err := h.assetsFS.Open(name)
	if err != nil {
		h.notFound.ServeHTTP(w, req)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		h.notFound.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Content-Type", core.ContentType(name))

	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(w, req, info.Name(), info.ModTime(), rs)
		return
	}

	data, err := iofs.ReadFile(h.assetsFS, name)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			h.notFound.ServeHTTP(w, req)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(data)
}

