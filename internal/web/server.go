// Package web provides the HTTP server and JSON handlers for the catalog API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/catalog/internal/config"
	"github.com/JonMunkholm/catalog/internal/core"
	mw "github.com/JonMunkholm/catalog/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the catalog API.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	limiters []*ipRateLimiter
}

// NewServer creates a Server that serves service according to cfg.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
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
	s.router.Use(securityHeaders)
	s.router.Use(withClientIP)

	if s.cfg.Rate.Enabled {
		limiter := newIPRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.limiters = append(s.limiters, limiter)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		// Imports run under their own timeout inside the service, so they
		// skip the request timeout below.
		importRoute := r.With()
		if s.cfg.Rate.Enabled && s.cfg.Rate.ImportPerMinute > 0 {
			limiter := newIPRateLimiter(s.cfg.Rate.ImportPerMinute, 1)
			s.limiters = append(s.limiters, limiter)
			importRoute = r.With(limiter.middleware)
		}
		importRoute.Post("/products/import", s.handleImport)

		r.Group(func(r chi.Router) {
			if s.cfg.Server.RequestTimeout > 0 {
				r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
			}

			// Export
			r.Get("/export", s.handleExport)
			r.Get("/export/{dataset}", s.handleExportDataset)

			// Products
			r.Get("/products", s.handleListProducts)
			r.Post("/products", s.handleCreateProduct)
			r.Get("/products/search", s.handleSearchProducts)
			r.Get("/products/{id}", s.handleGetProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			// Assets
			r.Get("/products/{id}/assets", s.handleListAssets)
			r.Post("/products/{id}/assets", s.handleSaveAssets)
			r.Delete("/products/{id}/assets", s.handleDeleteAllAssets)
			r.Get("/products/{id}/assets/{assetID}", s.handleGetAsset)
			r.Put("/products/{id}/assets/{assetID}", s.handleUpdateAsset)
			r.Delete("/products/{id}/assets/{assetID}", s.handleDeleteAsset)

			// Reviews
			r.Get("/products/{id}/reviews", s.handleListReviews)
			r.Post("/products/{id}/reviews", s.handleSaveReview)
			r.Get("/products/{id}/reviews/{userName}/{commentID}", s.handleGetReview)
			r.Delete("/products/{id}/reviews/{userName}/{commentID}", s.handleDeleteReview)

			// Inventory and pricing
			r.Get("/inventory", s.handleListInventory)
			r.Get("/products/{id}/inventory", s.handleGetInventory)
			r.Put("/products/{id}/inventory", s.handleSaveInventory)
			r.Patch("/products/{id}/inventory", s.handleUpdateInventory)
			r.Delete("/products/{id}/inventory", s.handleDeleteInventory)

			r.Get("/pricing", s.handleListPricing)
			r.Get("/products/{id}/pricing", s.handleGetPricing)
			r.Put("/products/{id}/pricing", s.handleSavePricing)
			r.Patch("/products/{id}/pricing", s.handleUpdatePricing)
			r.Delete("/products/{id}/pricing", s.handleDeletePricing)

			// Categories and brands
			r.Get("/categories", s.handleListCategories)
			r.Post("/categories", s.handleCreateCategory)
			r.Get("/categories/{id}", s.handleGetCategory)
			r.Put("/categories/{id}", s.handleUpdateCategory)
			r.Delete("/categories/{id}", s.handleDeleteCategory)
			r.Get("/categories/{id}/products", s.handleProductsByCategory)

			r.Get("/brands", s.handleListBrands)
			r.Post("/brands", s.handleCreateBrand)
			r.Get("/brands/{id}", s.handleGetBrand)
			r.Put("/brands/{id}", s.handleUpdateBrand)
			r.Delete("/brands/{id}", s.handleDeleteBrand)
			r.Get("/brands/{id}/products", s.handleProductsByBrand)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and stops the
// rate limiter sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.Stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"imports": s.service.ImportLimiter().Status(),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
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
