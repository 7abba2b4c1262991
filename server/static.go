package server

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// mimeTypes maps file extensions to Content-Type. Anything else is served
// as application/octet-stream.
var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".ico":  "image/x-icon",
}

// NotFoundBody is the plain-text body of every 404 from the asset handler.
const NotFoundBody = "Not found"

// ContentType returns the Content-Type for a file name.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// StaticHandler serves files from root. "/" maps to index.html, every
// successful response carries Cache-Control: no-store, and any failure
// (missing file, directory, path outside root) is a 404 "Not found".
type StaticHandler struct {
	root fs.FS
}

// NewStaticHandler creates a handler over root.
func NewStaticHandler(root fs.FS) *StaticHandler {
	return &StaticHandler{root: root}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, ok := assetName(r.URL.Path)
	if !ok {
		notFound(w)
		return
	}

	data, err := h.read(name)
	if err != nil {
		notFound(w)
		return
	}

	w.Header().Set("Content-Type", ContentType(name))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data) //nolint:errcheck
	}
}

func (h *StaticHandler) read(name string) ([]byte, error) {
	f, err := h.root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fs.ErrNotExist
	}
	return io.ReadAll(f)
}

// assetName converts a URL path into an fs.FS name. Paths that would
// escape the root are rejected rather than cleaned into it.
func assetName(urlPath string) (string, bool) {
	if urlPath == "" || urlPath == "/" {
		return "index.html", true
	}
	name := strings.TrimPrefix(urlPath, "/")
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", false
		}
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) || name == "." {
		return "", false
	}
	return name, true
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, NotFoundBody) //nolint:errcheck
}
