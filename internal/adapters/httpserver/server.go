package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phenrril/envatex/internal/usecase"
)

type Options struct {
	Auth       *usecase.AuthUC
	Products   *usecase.ProductUC
	Quotations *usecase.QuotationUC
	// Health reports whether the database answers.
	Health func(ctx context.Context) error
	// UploadsDir is served under /uploads/ when images are stored locally.
	UploadsDir     string
	AllowedOrigins []string
}

type Server struct {
	auth       *usecase.AuthUC
	products   *usecase.ProductUC
	quotations *usecase.QuotationUC
	health     func(ctx context.Context) error
	router     chi.Router
}

const maxUploadBytes = 25 << 20

func New(o Options) http.Handler {
	s := &Server{auth: o.Auth, products: o.Products, quotations: o.Quotations, health: o.Health, router: chi.NewRouter()}

	origins := o.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(
		RequestID,
		middleware.RealIP,
		Logging,
		Recovery,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
			MaxAge:         300,
		}),
	)
	s.routes(o.UploadsDir)
	return s.router
}

func (s *Server) routes(uploadsDir string) {
	r := s.router

	r.Get("/healthz", s.handleHealth)
	if uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.apiLogin)

		r.Get("/products", s.apiProductList)
		r.Post("/products", s.withClaims(s.apiProductCreate))
		r.Put("/products/{id}", s.withClaims(s.apiProductUpdate))
		r.Delete("/products/{id}", s.withClaims(s.apiProductDelete))

		r.Post("/quotations", s.apiQuotationCreate)
		r.Get("/quotations", s.withClaims(s.apiQuotationList))
		r.Get("/quotations/export", s.withClaims(s.apiQuotationExport))
		r.Patch("/quotations/{id}", s.withClaims(s.apiQuotationRespond))
		r.Delete("/quotations/{id}", s.withClaims(s.apiQuotationDelete))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Recurso no encontrado"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Método no permitido"})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "error", "details": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// idParam parses the {id} path segment. ok is false for anything that is not a positive integer.
func idParam(r *http.Request) (uint, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
