package templates

import (
	"context"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body>`,
			`<header class="topbar"><a href="/" class="brand">Stock</a>`,
			`<nav><a href="/products/new" class="btn primary">Nuevo producto</a>`,
			`<a href="/export" class="btn">Exportar CSV</a></nav></header><main>`)
		h.render(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="alert error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` <span>`)
			h.text(action)
			h.raw(`</span>`)
		}
		if code != "" {
			h.raw(` <code>`)
			h.text(code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
	})
}

// Notice renders a confirmation banner; empty text renders nothing.
func Notice(text string) templ.Component {
	return component(func(_ context.Context, h *html) {
		if text == "" {
			return
		}
		h.raw(`<div class="alert notice" role="status">`)
		h.text(text)
		h.raw(`</div>`)
	})
}

// ErrorPage is a full page around ErrorAlert.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("Error", component(func(ctx context.Context, h *html) {
		h.render(ctx, ErrorAlert(message, action, code))
		h.raw(`<p><a href="/">Volver al listado</a></p>`)
	}))
}
