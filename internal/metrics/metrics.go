// Package metrics provides Prometheus metrics for the send service: HTTP
// request instrumentation, websocket session gauges, and counters around the
// amount mirroring engine (sync passes, barrier skips, guarded insertions,
// price fetches).
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Port    string `envconfig:"METRICS_PORT" default:"9090"`
}

// Server exposes /metrics on its own port, separate from the app listener.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

func StartServer(cfg Config, logger *logrus.Logger) *Server {
	if !cfg.Enabled {
		return nil
	}

	RegisterAll(logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}

	go func() {
		logger.Infof("metrics server listening on :%s", cfg.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return s
}

func (s *Server) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
