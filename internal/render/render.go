// Package render executes the embedded HTML page templates.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// Page template names.
const (
	PageHome     = "index.html"
	PageLastRace = "last_race.html"
)

const layout = "templates/base.html"

//go:embed templates/*.html
var files embed.FS

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

// New parses the embedded templates. A nil clock defaults to time.Now.
func New(now func() time.Time) (*Renderer, error) {
	if now == nil {
		now = time.Now
	}
	r := &Renderer{pages: make(map[string]*template.Template), now: now}

	base, err := template.New("base.html").Funcs(r.funcs()).ParseFS(files, layout)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	for _, name := range []string{PageHome, PageLastRace} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(files, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Component wraps the named page and its data as a templ component.
func (r *Renderer) Component(page string, data any) (templ.Component, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	return templ.FromGoHTML(t, data), nil
}

// Serve renders page into w.
func (r *Renderer) Serve(w http.ResponseWriter, req *http.Request, page string, data any) error {
	c, err := r.Component(page, data)
	if err != nil {
		return err
	}
	templ.Handler(c).ServeHTTP(w, req)
	return nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"ordinal": humanize.Ordinal,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"countdown": r.countdown,
	}
}

// countdown renders an RFC3339 timestamp relative to the clock, e.g. "3 days from now".
func (r *Renderer) countdown(iso *string) string {
	if iso == nil {
		return ""
	}
	t, err := time.Parse(time.RFC3339, *iso)
	if err != nil {
		return ""
	}
	return humanize.RelTime(t, r.now(), "ago", "from now")
}
