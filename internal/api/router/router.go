package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/championmethod/funnel-platform/internal/checkout"
	"github.com/championmethod/funnel-platform/internal/content"
	httpmiddleware "github.com/championmethod/funnel-platform/internal/http/middleware"
	"github.com/championmethod/funnel-platform/internal/leads"
	"github.com/championmethod/funnel-platform/internal/qualification"
	"github.com/championmethod/funnel-platform/internal/visitor"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger               *logging.Logger
	CheckoutHandler      *checkout.Handler
	QualificationHandler *qualification.Handler
	LeadsHandler         *leads.Handler
	ContentHandler       *content.Handler
	MetricsHandler       http.Handler
	CORSAllowedOrigins   []string
	RateLimitPerSecond   float64
	RateLimitBurst       int
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
	r.Use(visitor.Middleware)

	r.Get("/health", handleHealth)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ContentHandler != nil {
		r.Get("/api/content/{section}", cfg.ContentHandler.GetSection)
		r.Get("/api/offer/countdown", cfg.ContentHandler.GetCountdown)
	}

	if cfg.CheckoutHandler != nil {
		r.Route("/api/checkout", func(api chi.Router) {
			if cfg.RateLimitPerSecond > 0 {
				api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
			}
			api.Post("/card-meta", cfg.CheckoutHandler.CardMeta)
			api.Post("/validate", cfg.CheckoutHandler.ValidateField)
			api.Post("/submit", cfg.CheckoutHandler.Submit)
		})
		r.Get("/api/thank-you", cfg.CheckoutHandler.ThankYou)
	}

	if cfg.QualificationHandler != nil {
		r.Route("/api/qualification", func(api chi.Router) {
			api.Post("/start", cfg.QualificationHandler.HandleStart)
			api.Post("/answer", cfg.QualificationHandler.HandleAnswer)
			api.Get("/history", cfg.QualificationHandler.HandleHistory)
			api.Get("/{sessionID}", cfg.QualificationHandler.HandleGet)
		})
		r.Get("/qualification/ws", cfg.QualificationHandler.HandleWebSocket)
		r.Get("/widget.js", cfg.QualificationHandler.HandleWidgetJS)
	}

	if cfg.LeadsHandler != nil {
		r.Post("/api/leads", cfg.LeadsHandler.CreateLead)
		r.Get("/api/leads/{leadID}", cfg.LeadsHandler.GetLead)
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
