package web

// handlers_api.go is the JSON API under /api. Errors use ErrorResponse.

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/stockroom/internal/core"
	"github.com/JonMunkholm/stockroom/internal/web/templates"
)

// adjustRequest is the body of the single and bulk adjust endpoints.
type adjustRequest struct {
	IDs       []string `json:"ids,omitempty"`
	Direction string   `json:"direction"`
	Quantity  int      `json:"quantity"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &core.ValidationError{Field: "body", Err: fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"products": s.store.Len(),
	})
}

// handleListProducts returns the filtered, sorted view.
// Query parameters match the catalog page: q, category, supplier, status, sort, dir.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.store.Query(parseQuery(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"products": toViews(products),
		"count":    len(products),
		"total":    s.store.Len(),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, toView(p))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err, 0)
		return
	}

	p, err := s.store.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	w.Header().Set("Location", "/api"+templates.ProductPath(p.ID, ""))
	writeJSON(w, http.StatusCreated, toView(p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err, 0)
		return
	}

	p, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, toView(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdjustProduct(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, 0)
		return
	}
	dir, err := core.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	p, err := s.store.AdjustStock(r.Context(), chi.URLParam(r, "id"), dir, req.Quantity)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, toView(p))
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, 0)
		return
	}

	n, err := s.store.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (s *Server) handleBulkAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, 0)
		return
	}
	dir, err := core.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	n, err := s.store.BulkAdjustStock(r.Context(), req.IDs, dir, req.Quantity)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"adjusted": n})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Options())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}
