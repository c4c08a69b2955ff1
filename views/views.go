// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the application's HTML pages from embedded templates.

Each page constructor returns a Renderer so handlers read as
views.Index(data).Render(r.Context(), w).
*/
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates
var templateFS embed.FS

var pages = template.Must(
	template.New("").ParseFS(templateFS, "templates/*.tmpl"),
)

// Renderer executes one named page template against its data.
type Renderer struct {
	name string
	data any
}

// Render writes the page to w.
func (rn Renderer) Render(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := pages.ExecuteTemplate(w, rn.name, rn.data); err != nil {
		return fmt.Errorf("failed to render %s: %w", rn.name, err)
	}

	return nil
}

// Index renders the message listing page.
func Index(data IndexData) Renderer {
	return Renderer{name: "index.tmpl", data: data}
}

// MessageDetail renders a single message with its rating form.
func MessageDetail(data MessageDetailData) Renderer {
	return Renderer{name: "message-detail.tmpl", data: data}
}

// MessageNotFound renders the 404 page for unknown message IDs.
func MessageNotFound(data MessageNotFoundData) Renderer {
	return Renderer{name: "message-not-found.tmpl", data: data}
}

// RatingForm renders the rating form fragment on its own, for form
// re-rendering without JavaScript.
func RatingForm(data RatingFormData) Renderer {
	return Renderer{name: "rating-form.tmpl", data: data}
}

// Error renders the generic error page.
func Error(data ErrorData) Renderer {
	return Renderer{name: "error.tmpl", data: data}
}

// About renders the instance information page.
func About(data AboutData) Renderer {
	return Renderer{name: "about.tmpl", data: data}
}
