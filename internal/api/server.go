// Package api exposes the lectora services over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lectoraapp/lectora/internal/ratelimit"
	"github.com/lectoraapp/lectora/internal/service"
	"github.com/lectoraapp/lectora/internal/store"
)

// Services groups the business services the API server calls.
type Services struct {
	Prefs           *service.PrefsService
	Library         *service.LibraryService
	Streak          *service.StreakService
	Recommendations *service.RecommendationService
	Books           *service.BookService
	Profile         *service.ProfileService
}

// Options configures the HTTP layer.
type Options struct {
	CORSOrigins []string
	// RequestRPS and RequestBurst bound requests per client IP. Zero disables limiting.
	RequestRPS   float64
	RequestBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	prefs    *store.Prefs
	services *Services
	router   *chi.Mux
	api      huma.API
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(prefs *store.Prefs, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		prefs:    prefs,
		services: services,
		router:   router,
		logger:   logger,
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("Lectora API", "1.0.0")
	humaConfig.Info.Description = "Reading tracker: onboarding preferences, daily recommendations, library lists and streaks."
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources held by middleware.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if opts.RequestRPS > 0 {
		s.limiter = ratelimit.New(opts.RequestRPS, max(opts.RequestBurst, 1))
		s.router.Use(rateLimitMiddleware(s.limiter, s.logger))
	}
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerGenreRoutes()
	s.registerPrefsRoutes()
	s.registerLibraryRoutes()
	s.registerStreakRoutes()
	s.registerRecommendationRoutes()
	s.registerBookRoutes()
	s.registerProfileRoutes()
}
