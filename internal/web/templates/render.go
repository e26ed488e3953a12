// Package templates renders the catalog UI as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// html accumulates markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s with HTML escaping.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with the value escaped.
func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// render runs nested components in order.
func (h *html) render(ctx context.Context, components ...templ.Component) {
	for _, c := range components {
		if h.err != nil {
			return
		}
		h.err = c.Render(ctx, h.w)
	}
}

// component adapts a markup builder to templ.Component.
func component(build func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		build(ctx, h)
		return h.err
	})
}

var printer = message.NewPrinter(language.Spanish)

// Money formats an amount the way the store prices goods.
func Money(v float64) string {
	return "$ " + printer.Sprintf("%.2f", v)
}

// Number formats a count with locale grouping.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// QueryURL builds the catalog URL for q, omitting empty parameters.
func QueryURL(q core.Query) string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("q", q.Filters.Search)
	set("category", q.Filters.Category)
	set("supplier", q.Filters.Supplier)
	set("status", string(q.Filters.Status))
	if q.Sort != core.DefaultSort {
		set("sort", q.Sort.Key)
		set("dir", q.Sort.Dir)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// ProductPath returns /products/{id} or /products/{id}/{action}.
func ProductPath(id, action string) string {
	p := "/products/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

func itoa(n int) string { return strconv.Itoa(n) }

func amountValue(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
