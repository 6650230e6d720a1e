// Package templates renders the HTML for the BookStudio pages. Components
// are plain templ components; all free text passes through a strict
// sanitizer before it reaches the page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bookstudio/webui/internal/ui"
)

// policy strips every tag from user-influenced text. Backend data is
// trusted in principle but rendered defensively anyway.
var policy = bluemonday.StrictPolicy()

// esc sanitizes free text for embedding in markup.
func esc(s string) string {
	return policy.Sanitize(s)
}

// Layout wraps a page body in the BookStudio shell with the navbar and the
// toast container.
func Layout(title string, toasts []ui.Toast, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="es" data-bs-theme="auto">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - BookStudio</title>
<link rel="stylesheet" href="/static/css/bootstrap.min.css">
<link rel="stylesheet" href="/static/css/styles.css">
</head>
<body>
<nav class="navbar navbar-expand-lg border-bottom">
<div class="container-fluid">
<a class="navbar-brand" href="/">BookStudio</a>
<div class="navbar-nav">
<a class="nav-link" href="/books">Libros</a>
<a class="nav-link" href="/students">Estudiantes</a>
</div>
</div>
</nav>
`, esc(title)); err != nil {
			return err
		}
		if err := toastContainer(toasts).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="container-fluid py-3">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<script src="/static/js/bootstrap.bundle.min.js"></script>
</body>
</html>
`)
		return err
	})
}

// toastContainer renders queued notifications in arrival order.
func toastContainer(toasts []ui.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="toast-container position-fixed top-0 end-0 p-3">`); err != nil {
			return err
		}
		for _, t := range toasts {
			cls := "text-bg-success"
			switch t.Level {
			case ui.LevelError:
				cls = "text-bg-danger"
			case ui.LevelWarning:
				cls = "text-bg-warning"
			}
			if _, err := fmt.Fprintf(w,
				`<div class="toast show %s" role="alert"><div class="toast-body">%s</div></div>`,
				cls, esc(t.Message)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
