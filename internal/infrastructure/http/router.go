package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mserban/atelier/internal/infrastructure/http/handlers"
	"github.com/mserban/atelier/internal/infrastructure/http/middleware"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

type RouterConfig struct {
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	HealthHandler   *handlers.HealthHandler
	Responder       *respond.Responder
	RequireAuth     func(http.Handler) http.Handler
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	Log             zerolog.Logger
	Metrics         bool // expose /metrics

	// UploadsDir, when set, serves stored photos at UploadsPrefix for the
	// local storage backend.
	UploadsDir    string
	UploadsPrefix string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(middleware.Recoverer(cfg.Log, cfg.Responder))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	r.NotFound(cfg.Responder.NotFound)
	r.MethodNotAllowed(cfg.Responder.NotFound)

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if cfg.UploadsDir != "" {
		prefix := strings.TrimSuffix(cfg.UploadsPrefix, "/")
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", cfg.UsersHandler.Register)
		r.Post("/login", cfg.UsersHandler.Login)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Use(cfg.RequireAuth)
		r.Post("/", cfg.ProjectsHandler.Create)
		r.Get("/all", cfg.ProjectsHandler.List(false))
		r.Get("/{id}", cfg.ProjectsHandler.Get(false))
		r.Patch("/{id}", cfg.ProjectsHandler.Update)
	})

	r.Route("/public/projects", func(r chi.Router) {
		r.Get("/all", cfg.ProjectsHandler.List(true))
		r.Get("/{id}", cfg.ProjectsHandler.Get(true))
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
