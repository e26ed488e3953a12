package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// runImport takes an import slot, reads the CSV from the request and merges
// it into the store.
func (s *Server) runImport(w http.ResponseWriter, r *http.Request) (core.ImportResult, error) {
	if err := s.imports.Acquire(r.Context()); err != nil {
		return core.ImportResult{}, err
	}
	defer s.imports.Release()

	body, err := s.importBody(w, r)
	if err != nil {
		return core.ImportResult{}, err
	}
	defer body.Close()

	return s.store.Import(r.Context(), body)
}

// handleImportAPI accepts a multipart "file" field or a raw text/csv body.
func (s *Server) handleImportAPI(w http.ResponseWriter, r *http.Request) {
	res, err := s.runImport(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExport downloads the whole catalog, in store order, as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, core.ExportFileName(s.now())))

	if err := s.store.Export(w); err != nil {
		// Headers are already sent; all that is left is to log.
		respondErrorLogOnly(r, err)
	}
}
