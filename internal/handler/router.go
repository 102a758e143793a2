package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/middleware"
	"github.com/fundhive/fundhive/internal/service"
)

// Services bundles the business services the API exposes.
type Services struct {
	Projects       *service.ProjectService
	Ledger         *service.LedgerService
	Categories     *service.CategoryService
	Users          *service.UserService
	Events         *service.EventService
	Collaborations *service.CollaborationService
	Admin          *service.AdminService
}

// RouterConfig holds HTTP-level settings.
type RouterConfig struct {
	IsDevelopment      bool
	CORSAllowedOrigins []string
	MaxRequestBodySize int64
	RateLimitEnabled   bool
	MutationsPerMinute int
	MutationsBurst     int
}

// RouterDeps are the collaborators NewRouter wires together.
type RouterDeps struct {
	Config   RouterConfig
	Services Services
	Logger   *slog.Logger
	Metrics  metrics.Recorder
	Tokens   middleware.TokenVerifier
	// UserLimiter may be nil, which disables per-user limits.
	UserLimiter middleware.UserRateLimiter
	// AuthLimiter may be nil, which disables login throttling.
	AuthLimiter *middleware.IPRateLimiter
	Health      *HealthHandler
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// Now overrides the clock used for derived fields such as daysLeft.
	Now func() time.Time
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	svc := deps.Services

	projects := NewProjectHandler(svc.Projects, svc.Ledger, logger)
	categories := NewCategoryHandler(svc.Categories, logger)
	authH := NewAuthHandler(svc.Users, logger)
	events := NewEventHandler(svc.Events, logger)
	collaborations := NewCollaborationHandler(svc.Collaborations, logger)
	admin := NewAdminHandler(svc.Admin, logger)
	if deps.Now != nil {
		projects.clock = deps.Now
		categories.clock = deps.Now
		admin.clock = deps.Now
	}

	health := deps.Health
	if health == nil {
		health = NewHealthHandler(nil, nil)
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, deps.Metrics))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: deps.Config.IsDevelopment}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(deps.Config.CORSAllowedOrigins)))
	r.Use(middleware.MaxBodySize(deps.Config.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	requireAuth := middleware.Auth(middleware.AuthConfig{Logger: logger, Verifier: deps.Tokens})
	limitMutations := middleware.RateLimitUser(middleware.UserRateLimitConfig{
		Logger:        logger,
		Limiter:       deps.UserLimiter,
		Enabled:       deps.Config.RateLimitEnabled,
		RatePerMinute: deps.Config.MutationsPerMinute,
		Burst:         deps.Config.MutationsBurst,
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if deps.AuthLimiter != nil {
					r.Use(deps.AuthLimiter.Middleware)
				}
				r.Post("/register", authH.Register)
				r.Post("/login", authH.Login)
			})
			r.With(requireAuth).Get("/me", authH.Me)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Get("/trending", projects.Trending)
			r.Get("/category/{category}", projects.ByCategory)
			r.Get("/{id}", projects.Get)
			r.Get("/{id}/backers", projects.Backers)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Use(limitMutations)

				r.Post("/", projects.Create)
				r.Put("/{id}", projects.Update)
				r.Delete("/{id}", projects.Delete)
				r.Post("/{id}/back", projects.Back)
				r.Post("/{id}/save", projects.Save)
				r.Delete("/{id}/save", projects.Unsave)
				r.Post("/{id}/updates", projects.PostUpdate)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.Counts)
			r.Get("/featured", categories.Featured)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.List)
			r.Get("/upcoming", events.Upcoming)
			r.Get("/{id}", events.Get)
			r.With(requireAuth, limitMutations).Post("/{id}/register", events.Register)
		})

		r.Route("/collaborations", func(r chi.Router) {
			r.Get("/", collaborations.List)
			r.Get("/active", collaborations.Active)
			r.Get("/{id}", collaborations.Get)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/stats", admin.Stats)

			r.Get("/projects", admin.Projects)
			r.Put("/projects/{id}", admin.UpdateProject)
			r.Delete("/projects/{id}", admin.DeleteProject)

			r.Get("/events", events.ListAll)
			r.Post("/events", events.Create)
			r.Put("/events/{id}", events.Update)
			r.Delete("/events/{id}", events.Delete)

			r.Get("/collaborations", collaborations.ListAll)
			r.Post("/collaborations", collaborations.Create)
			r.Put("/collaborations/{id}", collaborations.Update)
			r.Delete("/collaborations/{id}", collaborations.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
