package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"taskboard/internal/model"
)

//go:embed templates
var templateFS embed.FS

// PageData carries everything the page templates can reach.
type PageData struct {
	Tasks  []model.Task
	Task   *model.Task
	Filter string
	Form   FormData
	Error  string
}

// FormData holds submitted (or pre-filled) task form values so a rejected
// form re-renders with what the user typed.
type FormData struct {
	Action      string
	Method      string
	Title       string
	Description string
	DueDate     string
	Completed   bool
	Error       string
}

var functions = template.FuncMap{
	"humanDate": humanDate,
}

func humanDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Renderer caches one parsed template set per page, each combining the
// layout, the shared partials and the page body.
type Renderer struct {
	cache map[string]*template.Template
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	cache := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".tmpl")

		ts, err := template.New(name).Funcs(functions).ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/partials/*.tmpl",
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		cache[name] = ts
	}

	return &Renderer{cache: cache}, nil
}

// Page writes a full HTML page. Render errors are caught before the status
// line goes out.
func (rd *Renderer) Page(w http.ResponseWriter, status int, page string, data PageData) {
	ts, ok := rd.cache[page]
	if !ok {
		log.Printf("render: unknown page %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// TaskRow renders the shared row partial for a single task, for use inside
// stream fragments.
func (rd *Renderer) TaskRow(task model.Task) (template.HTML, error) {
	ts := rd.cache["index"]
	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "task", task); err != nil {
		return "", fmt.Errorf("render task row: %w", err)
	}
	return template.HTML(buf.String()), nil
}
