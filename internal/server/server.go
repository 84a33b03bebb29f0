// Package server is the thin transport adapter in front of the send flow.
// The browser holds one websocket per flow; every UI event is forwarded here
// and every field update is pushed back. No amount logic lives at this layer.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/app-send/internal/metrics"
	"github.com/vultisig/app-send/internal/price"
	"github.com/vultisig/app-send/internal/stats"
)

type Config struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	// PriceRefresh is how often an idle session re-polls its price.
	PriceRefresh time.Duration `envconfig:"PRICE_REFRESH" default:"30s"`
}

type Server struct {
	cfg    Config
	echo   *echo.Echo
	logger *logrus.Logger
	feed   price.Feed
	stats  *stats.Collector
}

func New(cfg Config, feed price.Feed, logger *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())

	s := &Server{
		cfg:    cfg,
		echo:   e,
		logger: logger,
		feed:   feed,
		stats:  stats.NewCollector(),
	}

	e.GET("/healthz", s.handleHealth)
	e.GET("/stats", s.handleStats)
	e.GET("/ws", s.handleWS)

	return s
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.stats.Snapshot())
}

// Start blocks until the context is canceled, then drains the listener.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(":" + s.cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
