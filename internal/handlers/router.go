package handlers

import (
	"net/http"

	"dumptrac/internal/middleware"
	"dumptrac/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterConfig carries what the backend router needs.
type RouterConfig struct {
	Store          Store
	Notifier       services.Notifier
	AllowedOrigins []string
	Log            zerolog.Logger
}

// NewRouter wires the REST API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimiddleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", Root())
	r.Get("/cors-test", CORSTest())
	r.Get("/health", Health())

	r.Route("/api", func(r chi.Router) {
		// Bins endpoints
		r.Get("/bins", GetBins(cfg.Store, cfg.Log))
		r.Post("/bins", CreateBin(cfg.Store, cfg.Log))

		// Reports endpoints
		r.Get("/reports", GetReports(cfg.Store, cfg.Log))
		r.Post("/reports", CreateReport(cfg.Store, cfg.Notifier, cfg.Log))
		r.Put("/reports/{id}/clear", ClearReport(cfg.Store, cfg.Log))
	})

	return r
}
