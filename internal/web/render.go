package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"goboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the context every template receives.
type PageData struct {
	Title   string
	User    *models.User
	Flashes []string
	Data    any
}

// Renderer holds one parsed template set per page, each paired with the base
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	pages := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "base.html" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Template failures log and return a 500; they
// are the only hard failures the page layer produces.
func (r *Renderer) Render(w http.ResponseWriter, page string, data PageData) {
	t, ok := r.pages[page]
	if !ok {
		log.Printf("unknown template %q", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("rendering %s: %v", page, err)
	}
}
