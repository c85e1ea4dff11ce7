// Package api provides the HTTP API server and handlers for the swatch service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/swatch-server/internal/config"
	"github.com/listenupapp/swatch-server/internal/http/response"
	"github.com/listenupapp/swatch-server/internal/media/avatars"
	"github.com/listenupapp/swatch-server/internal/ratelimit"
	"github.com/listenupapp/swatch-server/internal/version"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services    *Services
	renderer    *avatars.Renderer
	rateLimiter *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// A nil rateLimiter disables per-IP throttling.
func NewServer(cfg *config.Config, services *Services, renderer *avatars.Renderer, rateLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		services:    services,
		renderer:    renderer,
		rateLimiter: rateLimiter,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	// Middleware must be attached before humachi registers the OpenAPI routes.
	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Swatch API", version.Server)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerSwatchRoutes()
	s.registerAvatarRoutes()

	// Unmatched routes answer with the envelope instead of chi's plain text.
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method not allowed", logger)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.RateLimit.Enabled && s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	}
}
