package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "base.html"
	// LayoutName is the template every page is executed through.
	LayoutName = "base"
)

// Renderer holds one parsed template set per page, each sharing the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	return NewFromFS(templateFS, "templates")
}

// NewFromFS parses every page in dir against dir/base.html.
func NewFromFS(fsys fs.FS, dir string) (*Renderer, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	layout := path.Join(dir, layoutFile)
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layout {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs()).ParseFS(fsys, layout, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}

	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, LayoutName, data)
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
	}
}
