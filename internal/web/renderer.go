// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/samber/oops"
)

//go:embed views/*.html
var viewsFS embed.FS

// Renderer produces an HTML page for a named view.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

// HTMLRenderer renders embedded html/template views.
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses the embedded views.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	templates, err := template.ParseFS(viewsFS, "views/*.html")
	if err != nil {
		return nil, oops.Code("RENDERER_PARSE_FAILED").
			With("operation", "parse embedded views").
			Wrap(err)
	}
	return &HTMLRenderer{templates: templates}, nil
}

// Render executes the named view.
func (r *HTMLRenderer) Render(w io.Writer, view string, data any) error {
	if err := r.templates.ExecuteTemplate(w, view+".html", data); err != nil {
		return oops.Code("RENDERER_EXECUTE_FAILED").
			With("view", view).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ Renderer = (*HTMLRenderer)(nil)
