package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/delivery/http/handler"
	"github.com/user/phytochem-crawler/internal/delivery/http/middleware"
	"github.com/user/phytochem-crawler/pkg/metrics"
)

const requestTimeout = 60 * time.Second

// New builds the API router. Metrics are served from gatherer.
func New(h *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Post("/extract", h.HandleExtract)
		r.Route("/plants", func(r chi.Router) {
			r.Post("/", h.HandleSubmitPlants)
			r.Get("/status", h.HandleGetPlantStatus)
			r.Get("/{name}", h.HandleGetPlantRecord)
		})
	})

	return r
}
