package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/freshshop/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.HomePage(UserFromContext(r.Context()), cartCount(r.Context())))
}

func staticPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, http.StatusOK, view.StaticPage(name, title, UserFromContext(r.Context()), cartCount(r.Context())))
	}
}

// render writes an HTML component with the given status code.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}
