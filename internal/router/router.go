package router

import (
	"net/http"

	"recycletrack-api/internal/handler"
	"recycletrack-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler            *handler.Handler
	AuthHandler        *handler.AuthHandler
	CatalogHandler     *handler.CatalogHandler
	ScanHandler        *handler.ScanHandler
	StatsHandler       *handler.StatsHandler
	LeaderboardHandler *handler.LeaderboardHandler
	AdminHandler       *handler.AdminHandler
	AuthMiddleware     func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
		r.Get("/api/v1/health", cfg.Handler.Health)
		r.Get("/api/v1/ready", cfg.Handler.Ready)
	}

	if cfg.AuthHandler != nil {
		r.Post("/api/v1/auth/register", cfg.AuthHandler.Register)
		r.Post("/api/v1/auth/login", cfg.AuthHandler.Login)
	}

	// AUTHENTICATED routes (use Group to apply auth middleware only to these)
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		r.Route("/api/v1", func(r chi.Router) {
			if cfg.AuthHandler != nil {
				r.Post("/auth/logout", cfg.AuthHandler.Logout)
			}

			if cfg.CatalogHandler != nil {
				r.Route("/catalog", func(r chi.Router) {
					r.Get("/", cfg.CatalogHandler.List)
					r.Get("/{barcode}", cfg.CatalogHandler.Lookup)
					r.Put("/{barcode}", cfg.CatalogHandler.Register)
				})
			}

			if cfg.ScanHandler != nil {
				r.Post("/scans", cfg.ScanHandler.RecordScan)
			}

			if cfg.StatsHandler != nil {
				r.Route("/users/me", func(r chi.Router) {
					r.Get("/stats", cfg.StatsHandler.GetMyStats)
					r.Get("/recent", cfg.StatsHandler.GetRecent)
				})
			}

			if cfg.LeaderboardHandler != nil {
				r.Get("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
			}

			if cfg.AdminHandler != nil {
				r.Get("/admin/stats", cfg.AdminHandler.GetStats)
			}
		})
	})

	return r
}
