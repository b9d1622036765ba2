package view

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Renderer renders pages with the embedded pongo2 templates.
type Renderer struct {
	page *pongo2.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("view: open templates: %w", err)
	}

	set := pongo2.NewSet("registration", pongo2.NewFSLoader(sub))
	page, err := set.FromFile("register.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse register.html: %w", err)
	}
	return &Renderer{page: page}, nil
}

// ContentType is the media type of rendered pages.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.page.ExecuteWriter(pongo2.Context{"page": page}, w); err != nil {
		return fmt.Errorf("view: render page: %w", err)
	}
	return nil
}
