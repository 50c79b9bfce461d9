package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/perfectpest/pestcontrol-platform/internal/api/respond"
	"github.com/perfectpest/pestcontrol-platform/internal/catalog"
	httpmiddleware "github.com/perfectpest/pestcontrol-platform/internal/http/middleware"
	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/internal/settings"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	CatalogHandler     *catalog.Handler
	SettingsHandler    *settings.Handler
	AdminAPIToken      string
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/api", func(api chi.Router) {
			api.Post("/leads", cfg.LeadsHandler.CreateBooking)
			if cfg.CatalogHandler != nil {
				api.Get("/services", cfg.CatalogHandler.ListPublic)
				api.Get("/services/{slug}", cfg.CatalogHandler.GetBySlug)
			}
			if cfg.SettingsHandler != nil {
				api.Get("/contact", cfg.SettingsHandler.GetContact)
			}
		})
	})

	// Admin routes (protected by a static bearer token)
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminAuth(cfg.AdminAPIToken))

		admin.Route("/leads", func(r chi.Router) {
			r.Get("/", cfg.LeadsHandler.List)
			r.Get("/{id}", cfg.LeadsHandler.Get)
			r.Patch("/{id}", cfg.LeadsHandler.UpdateLead)
		})

		if cfg.CatalogHandler != nil {
			admin.Route("/services", func(r chi.Router) {
				r.Get("/", cfg.CatalogHandler.ListAdmin)
				r.Post("/", cfg.CatalogHandler.Create)
				r.Put("/{id}", cfg.CatalogHandler.Update)
				r.Delete("/{id}", cfg.CatalogHandler.Delete)
			})
		}

		if cfg.SettingsHandler != nil {
			admin.Route("/settings", func(r chi.Router) {
				r.Get("/smtp", cfg.SettingsHandler.GetSMTP)
				r.Put("/smtp", cfg.SettingsHandler.PutSMTP)
				r.Get("/contact", cfg.SettingsHandler.GetContact)
				r.Put("/contact", cfg.SettingsHandler.PutContact)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
