package httpserver

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/config"
	"stem-solver/api/internal/handle"
	"stem-solver/api/internal/metrics"
)

// New assembles the API router, the Prometheus endpoint and the static
// frontend into a ready-to-run server.
func New(cfg config.ServerConfig, h *handle.Handle, log *logrus.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(
		requestLogger(log),
		middleware.Recoverer,
		middleware.Throttle(cfg.ThrottleLimit),
		middleware.Timeout(cfg.Timeout),
		metrics.Middleware,
	)
	// The browser frontend may be served from anywhere; mirror its open CORS.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Post("/api/solve", h.Solve)
	r.Post("/api/explain", h.Explain)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Static frontend last so it never shadows API routes.
	if _, err := os.Stat(cfg.StaticDir); err != nil {
		log.Warnf("static frontend dir %q not available: %v", cfg.StaticDir, err)
	}
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	return &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
}

func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Infof("%s -- %s -- %s", r.RemoteAddr, r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
