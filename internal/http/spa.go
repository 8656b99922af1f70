package httpx

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const messageRouteNotFound = "Route not found"

// apiNotFound answers unknown /api/* routes.
func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{Code: http.StatusNotFound, Message: messageRouteNotFound})
}

// spaHandler serves files from fsys and falls back to index.html so client-side
// routes resolve. Paths under /api/ never fall back.
type spaHandler struct {
	fsys  fs.FS
	files http.Handler
}

// NewSPAHandler builds the static handler. A nil fsys serves only the API 404.
func NewSPAHandler(fsys fs.FS) http.Handler {
	if fsys == nil {
		return http.HandlerFunc(apiNotFound)
	}
	return &spaHandler{fsys: fsys, files: http.FileServerFS(fsys)}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		apiNotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}
	if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}
	h.serveIndex(w, r)
}

func (h *spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	body, err := fs.ReadFile(h.fsys, "index.html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}
