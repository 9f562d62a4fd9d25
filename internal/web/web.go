// Package web serves the embedded browser UI.
package web

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/phrazzld/braindump-api/internal/api/shared"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the UI files on GET and HEAD. "/" maps to index.html.
// Unknown paths get a JSON 404 and other methods a JSON 405.
func Handler() http.Handler {
	files, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return handler{files: files, modTime: time.Now()}
}

type handler struct {
	files   fs.FS
	modTime time.Time
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Unable to read file", err)
			return
		}
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
		return
	}

	http.ServeContent(w, r, name, h.modTime, bytes.NewReader(data))
}
