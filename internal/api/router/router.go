package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/spendlens/docs"
	"github.com/pratik-mahalle/spendlens/internal/api/handlers"
	"github.com/pratik-mahalle/spendlens/internal/api/middleware"
	"github.com/pratik-mahalle/spendlens/internal/config"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

type Handlers struct {
	Health         *handlers.HealthHandler
	Provider       *handlers.ProviderHandler
	Sync           *handlers.SyncHandler
	Cost           *handlers.CostHandler
	Resource       *handlers.ResourceHandler
	Recommendation *handlers.RecommendationHandler
}

func New(cfg *config.Config, log *logger.Logger, limiter *middleware.RateLimiter, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.UserIdentity)
		r.Use(middleware.RateLimit(limiter))

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", h.Provider.List)
			r.Get("/status", h.Provider.GetStatus)
			r.Post("/test", h.Provider.Test)
			r.Post("/{provider}/connect", h.Provider.Connect)
			r.Delete("/{provider}", h.Provider.Disconnect)
		})

		r.Post("/sync", h.Sync.Sync)
		r.Get("/snapshot", h.Sync.Snapshot)

		r.Route("/costs", func(r chi.Router) {
			r.Get("/", h.Cost.Summary)
			r.Get("/records", h.Cost.Records)
		})
		r.Get("/budgets", h.Cost.Budgets)

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.Resource.List)
			r.Get("/summary", h.Resource.Summary)
			r.Get("/{provider}/*", h.Resource.Get)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", h.Recommendation.List)
			r.Get("/summary", h.Recommendation.Summary)
		})
	})

	return r
}
