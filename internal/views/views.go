package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	PageHome       = "home"
	PageTracker    = "tracker"
	PageSuggestion = "suggestion"
	PageSchedule   = "schedule"
)

var pages = []string{PageHome, PageTracker, PageSuggestion, PageSchedule}

// Renderer держит по отдельному набору шаблонов на страницу, чтобы блоки title и content не перекрывали друг друга.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("разбор шаблона %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render сначала пишет страницу в буфер, поэтому при ошибке в w ничего не попадает.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("неизвестная страница %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("рендер %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
