package server

import (
	"embed"
	"net/http"
	"path"
)

//go:embed pages/*.html
var pageFiles embed.FS

// Page names served by the static handlers.
const (
	PageForm       = "form.html"
	PageNotFound   = "notfound.html"
	PageWrongInput = "wronginput.html"
	PageFailure    = "failure.html"
)

// writePage writes an embedded HTML page with the given status code.
func writePage(w http.ResponseWriter, name string, status int) {
	data, err := pageFiles.ReadFile(path.Join("pages", name))
	if err != nil {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// PageHandler serves a single embedded page with a fixed status code.
type PageHandler struct {
	Name   string
	Status int
}

// StaticPage creates a handler for the named embedded page.
//
// The not-found fallback deliberately keeps status 200, matching the
// long-standing behavior of the form server.
func StaticPage(name string, status int) *PageHandler {
	return &PageHandler{Name: name, Status: status}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writePage(w, h.Name, h.Status)
}
