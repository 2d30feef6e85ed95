package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/config"
	"github.com/AnshRaj112/moments-backend/internal/handlers"
	"github.com/AnshRaj112/moments-backend/internal/metrics"
	"github.com/AnshRaj112/moments-backend/internal/middleware"
)

// NewRouter wires middleware and routes. m may be nil to disable metrics.
func NewRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	// Instrument wraps Recoverer so recovered panics are counted as 500s.
	if m != nil {
		r.Use(middleware.Instrument(m))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	// Health check and metrics
	r.Get("/health", h.Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	SetupRoutes(r, h)
	return r
}

// SetupRoutes registers the API.
func SetupRoutes(r chi.Router, h *handlers.Handler) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/api/ping", h.Ping)
	r.Get("/api/stats", h.GetStats)

	// Moments
	r.Get("/api/moments", h.GetMoments)
	r.Post("/api/moments", h.CreateMoment)
	r.Delete("/api/moments/{id}", h.DeleteMoment)
	r.Delete("/api/moments/", h.DeleteMoment) // empty id, rejected by the store

	// Replies
	r.Post("/api/replies", h.CreateReply)
	r.Delete("/api/replies/{id}", h.DeleteReply)
	r.Delete("/api/replies/", h.DeleteReply)

	// Image hosting for moments
	r.Post("/api/upload", h.UploadFile)
}
