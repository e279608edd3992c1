package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sbilibin2017/timekeeper/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Page names.
const (
	Index    = "index"
	Register = "user"
	Login    = "login"
	Forgot   = "forgot"
	Reset    = "reset"
	Validate = "validate"
)

// PageData is passed to every page.
type PageData struct {
	User    *models.User        // Logged-in principal, nil when anonymous
	Flashes map[string][]string // One-time messages keyed by kind
	Token   string              // Reset or verify token for the form action
}

// Renderer renders the embedded pages.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, name := range []string{Index, Register, Login, Forgot, Reset, Validate} {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// Render writes the named page to w. Nothing is written if execution fails.
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
