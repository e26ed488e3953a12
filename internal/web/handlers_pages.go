package web

// handlers_pages.go serves the HTML screens. Mutations use plain form posts
// and answer with a 303 redirect back to the catalog.

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/stockroom/internal/core"
	"github.com/JonMunkholm/stockroom/internal/web/templates"
)

// handleCatalog renders the catalog. HTMX requests get only the table.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	data := s.catalogData(r)
	data.Notice = r.URL.Query().Get("notice")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		templates.ProductTable(data).Render(r.Context(), w)
		return
	}
	templates.CatalogPage(data).Render(r.Context(), w)
}

func (s *Server) catalogData(r *http.Request) templates.CatalogData {
	q := parseQuery(r)
	return templates.CatalogData{
		Products: s.store.Query(q),
		Total:    s.store.Len(),
		Query:    q,
		Options:  s.store.Options(),
		Stats:    s.store.Stats(),
	}
}

// renderCatalogError re-renders the catalog with an error banner.
func (s *Server) renderCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	if isHTMX(r) {
		respondError(w, r, err, 0)
		return
	}
	status := statusFor(err)
	msg := core.MapError(err)
	data := s.catalogData(r)
	data.Error = &msg

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.CatalogPage(data).Render(r.Context(), w)
}

func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.ProductForm(templates.FormData{Options: s.store.Options()}).Render(r.Context(), w)
}

func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.ProductForm(formFor(p, s.store.Options())).Render(r.Context(), w)
}

func formFor(p core.Product, opts core.FilterOptions) templates.FormData {
	return templates.FormData{
		ID: p.ID,
		Input: core.ProductInput{
			Barcode: p.Barcode, Name: p.Name, Category: p.Category, Supplier: p.Supplier,
			Cost: p.Cost, Price: p.Price, Stock: p.Stock, MinStock: p.MinStock,
			Location: p.Location, Notes: p.Notes,
		},
		Stock:   p.Stock,
		Options: opts,
	}
}

// renderFormError shows the form again with what the user typed.
func (s *Server) renderFormError(w http.ResponseWriter, r *http.Request, d templates.FormData, err error) {
	msg := core.MapError(err)
	d.Error = &msg
	d.Options = s.store.Options()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusFor(err))
	templates.ProductForm(d).Render(r.Context(), w)
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductForm(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	p, err := s.store.Create(r.Context(), in)
	if core.IsValidation(err) {
		s.renderFormError(w, r, templates.FormData{Input: in}, err)
		return
	}
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	redirectWithNotice(w, r, fmt.Sprintf("Producto creado: %s", p.Name))
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, err := parseProductForm(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	p, err := s.store.Update(r.Context(), id, in)
	if core.IsValidation(err) {
		current, _ := s.store.Get(id)
		s.renderFormError(w, r, templates.FormData{ID: id, Input: in, Stock: current.Stock}, err)
		return
	}
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	redirectWithNotice(w, r, fmt.Sprintf("Producto actualizado: %s", p.Name))
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	redirectWithNotice(w, r, "Producto eliminado")
}

func (s *Server) handleAdjustForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dir, qty, err := parseAdjustForm(r, "direction")
	if err == nil {
		var p core.Product
		p, err = s.store.AdjustStock(r.Context(), id, dir, qty)
		if err == nil {
			redirectWithNotice(w, r, fmt.Sprintf("Stock de %s: %d", p.Name, p.Stock))
			return
		}
	}

	if core.IsValidation(err) {
		if p, getErr := s.store.Get(id); getErr == nil {
			s.renderFormError(w, r, formFor(p, core.FilterOptions{}), err)
			return
		}
	}
	respondError(w, r, err, 0)
}

// handleBulkForm applies the action button pressed on the catalog table to
// the checked rows: delete, in or out.
func (s *Server) handleBulkForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	ids := r.PostForm["ids"]
	if len(ids) == 0 {
		s.renderCatalogError(w, r, &core.ValidationError{Field: "selection", Err: core.ErrEmptySelection})
		return
	}

	var (
		notice string
		err    error
	)
	switch action := r.PostFormValue("action"); action {
	case "delete":
		var n int
		n, err = s.store.BulkDelete(r.Context(), ids)
		notice = fmt.Sprintf("Eliminados: %d", n)
	default:
		var (
			dir core.Direction
			qty int
			n   int
		)
		dir, qty, err = parseAdjustForm(r, "action")
		if err == nil {
			n, err = s.store.BulkAdjustStock(r.Context(), ids, dir, qty)
		}
		notice = fmt.Sprintf("Stock ajustado en %d productos", n)
	}

	if err != nil {
		s.renderCatalogError(w, r, err)
		return
	}
	redirectWithNotice(w, r, notice)
}

// handleImportForm merges an uploaded CSV and reports the counts.
func (s *Server) handleImportForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.runImport(w, r)
	if err != nil {
		s.renderCatalogError(w, r, err)
		return
	}
	redirectWithNotice(w, r, fmt.Sprintf("Importación: %d filas, %d nuevos, %d actualizados",
		res.Rows, res.Added, res.Updated))
}
