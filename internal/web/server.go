// Package web serves the inventory catalog over HTTP: server-rendered pages
// for the store staff and a JSON API for scripts.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/stockroom/internal/config"
	"github.com/JonMunkholm/stockroom/internal/core"
	mw "github.com/JonMunkholm/stockroom/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP front end of a catalog Store.
type Server struct {
	store   *core.Store
	cfg     *config.Config
	imports *core.ImportLimiter
	limits  []*rateLimiter
	router  *chi.Mux
	server  *http.Server

	now func() time.Time
}

// NewServer wires routes and middleware for store.
func NewServer(store *core.Store, cfg *config.Config) *Server {
	s := &Server{
		store:   store,
		cfg:     cfg,
		imports: core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		router:  chi.NewRouter(),
		now:     time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(withActor)

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// importLimit returns the stricter per-IP limiter for import endpoints, or a
// pass-through when rate limiting is off.
func (s *Server) importLimit() func(http.Handler) http.Handler {
	if !s.cfg.Rate.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.newRateLimiter(s.cfg.Rate.ImportLimit, time.Minute).middleware
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/healthz", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleCatalog)
	s.router.Get("/export", s.handleExport)
	s.router.With(s.importLimit()).Post("/import", s.handleImportForm)
	s.router.Route("/products", func(r chi.Router) {
		r.Get("/new", s.handleNewProduct)
		r.Post("/", s.handleCreateForm)
		r.Post("/bulk", s.handleBulkForm)
		r.Get("/{id}/edit", s.handleEditProduct)
		r.Post("/{id}", s.handleUpdateForm)
		r.Post("/{id}/delete", s.handleDeleteForm)
		r.Post("/{id}/adjust", s.handleAdjustForm)
	})

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleCreateProduct)
		r.Post("/products/bulk-delete", s.handleBulkDelete)
		r.Post("/products/bulk-adjust", s.handleBulkAdjust)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Put("/products/{id}", s.handleUpdateProduct)
		r.Delete("/products/{id}", s.handleDeleteProduct)
		r.Post("/products/{id}/adjust", s.handleAdjustProduct)

		r.With(s.importLimit()).Post("/import", s.handleImportAPI)
		r.Get("/export", s.handleExport)
		r.Get("/options", s.handleOptions)
		r.Get("/stats", s.handleStats)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	sc := s.cfg.Server
	s.server = &http.Server{
		Addr:         sc.Addr(),
		Handler:      s.router,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}

	slog.Info("starting server", "addr", sc.Addr())
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for running imports and then
// for the remaining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limits {
		rl.stop()
	}
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	if drainErr := s.imports.WaitForDrain(ctx); drainErr != nil {
		slog.Warn("imports still running at shutdown", "active", s.imports.Active())
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'"

// securityHeaders adds security headers to all responses.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if csp {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
