package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
)

// MetricsServer exposes a Prometheus registry over HTTP
type MetricsServer struct {
	server *http.Server
	logger zerolog.Logger
}

func NewMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry, logger zerolog.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})

	return &MetricsServer{
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// Handler returns the HTTP handler, for tests
func (s *MetricsServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves in the background. Errors other than a clean close are logged.
func (s *MetricsServer) Start() {
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("metrics server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
