package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/erazemk/sickfits/internal/blob"
	"github.com/erazemk/sickfits/internal/graph"
	webembed "github.com/erazemk/sickfits/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney": FormatMoney,
		"hasPermission": func(perms []string, p string) bool {
			return slices.Contains(perms, p)
		},
	}
}

// FormatMoney renders an amount in cents as dollars. Whole amounts drop the
// cents.
func FormatMoney(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := strconv.Itoa(cents / 100)
	var b strings.Builder
	for i, d := range dollars {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if cents%100 == 0 {
		return fmt.Sprintf("%s$%s", sign, b.String())
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents%100)
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.Templates

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"items.html",
		"item.html",
		"sell.html",
		"update.html",
		"signup.html",
		"reset.html",
		"permissions.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with an explicit status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Me      *meView
	Errors  []string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Templates *Templates
	Client    *graph.Client
	Images    blob.Store
}

// page builds the base data for a request, including the signed-in user.
func (s *Server) page(r *http.Request, title string) PageData {
	var out struct{ Me *meView }
	if err := s.Client.Do(r.Context(), currentUserQuery, nil, &out); err != nil {
		slog.Error("failed to load current user", "error", err)
	}
	return PageData{Title: title, Me: out.Me}
}
