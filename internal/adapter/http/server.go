package http

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed web
var webFS embed.FS

// Server exposes the dashboard page, chart API, and health endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the routes onto a chi router.
func NewServer(addr string, svc *dashboard.Service, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", sharedobs.LivenessHandler())
	router.Get("/readyz", sharedobs.ReadinessHandler(ready))
	router.Handle("/metrics", promhttp.Handler())

	h := &handlers{svc: svc}
	router.Route("/api", func(r chi.Router) {
		r.Get("/controls", h.controls)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/map", h.mapCharts)
			r.Get("/depth-bar", h.depthBar)
			r.Get("/depth-scatter", h.depthScatter)
			r.Get("/top-countries", h.topCountries)
		})
	})

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	router.Handle("/*", http.FileServer(http.FS(static)))

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
