package web

import (
	"fmt"
	"html/template"
	"io"
)

// Renderer turns a view name plus a data context into markup.
// Handlers depend only on this interface; the template set itself is
// a presentation concern.
type Renderer interface {
	Render(w io.Writer, view string, data interface{}) error
}

// HTMLRenderer renders views from an html/template set parsed once at
// startup.
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses every template matching glob.
func NewHTMLRenderer(glob string) (*HTMLRenderer, error) {
	tmpl, err := template.ParseGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLRenderer{templates: tmpl}, nil
}

// Render executes the named template.
func (r *HTMLRenderer) Render(w io.Writer, view string, data interface{}) error {
	return r.templates.ExecuteTemplate(w, view, data)
}
