package web

// handlers_common.go holds request parsing shared by the page and API handlers.

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// errNoFile is matched by core.MapError as FILE004.
var errNoFile = errors.New("no file provided")

// parseQuery reads filters and sort from URL query parameters:
// q, category, supplier, status, sort, dir.
func parseQuery(r *http.Request) core.Query {
	v := r.URL.Query()
	return core.Query{
		Filters: core.Filters{
			Search:   strings.TrimSpace(v.Get("q")),
			Category: core.ParseValueFilter(v.Get("category")),
			Supplier: core.ParseValueFilter(v.Get("supplier")),
			Status:   core.ParseStatusFilter(v.Get("status")),
		},
		Sort: core.ParseSort(v.Get("sort"), v.Get("dir")),
	}
}

// parseProductForm reads a product from a submitted form. Numbers follow
// the same lenient coercion as CSV import.
func parseProductForm(r *http.Request) (core.ProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return core.ProductInput{}, fmt.Errorf("parse form: %w", err)
	}
	f := r.PostForm
	return core.ProductInput{
		Barcode:  f.Get("barcode"),
		Name:     f.Get("name"),
		Category: f.Get("category"),
		Supplier: f.Get("supplier"),
		Cost:     core.ParseAmount(f.Get("cost")),
		Price:    core.ParseAmount(f.Get("price")),
		Stock:    core.ParseQuantity(f.Get("stock")),
		MinStock: core.ParseQuantity(f.Get("minStock")),
		Location: f.Get("location"),
		Notes:    f.Get("notes"),
	}, nil
}

// parseAdjustForm reads direction and quantity from a submitted form.
func parseAdjustForm(r *http.Request, dirField string) (core.Direction, int, error) {
	dir, err := core.ParseDirection(r.PostFormValue(dirField))
	if err != nil {
		return "", 0, err
	}
	qty, err := core.ParseAdjustQuantity(r.PostFormValue("quantity"))
	if err != nil {
		return "", 0, err
	}
	return dir, qty, nil
}

// importBody returns the CSV content of an import request: the "file" field
// of a multipart form, or the raw body for text/csv uploads. The body is
// capped at the configured import size.
func (s *Server) importBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	limit := int64(s.cfg.Import.MaxFileSize)
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("file too large: %w", err)
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	return file, nil
}

// redirectWithNotice sends the browser back to the catalog with a banner.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

// productView is the JSON shape of a product, with its derived status.
type productView struct {
	core.Product
	Status core.Status `json:"status"`
}

func toView(p core.Product) productView {
	return productView{Product: p, Status: p.Status()}
}

func toViews(products []core.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = toView(p)
	}
	return out
}
