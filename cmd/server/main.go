package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vultisig/app-send/internal/graceful"
	"github.com/vultisig/app-send/internal/logging"
	"github.com/vultisig/app-send/internal/metrics"
	"github.com/vultisig/app-send/internal/price"
	"github.com/vultisig/app-send/internal/server"
)

func main() {
	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	ctx := graceful.CancelOnSignal(context.Background(), logger)

	metricsServer := metrics.StartServer(cfg.Metrics, logger)

	feed := price.NewService(
		price.NewCoinGecko(cfg.CoinGeckoURL),
		price.NewGasFeed(cfg.EvmRPC, logger),
	)

	srv := server.New(cfg.Server, feed, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("send server listening on :%s", cfg.Server.Port)
		return srv.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return metricsServer.Stop(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("server exited with error: %v", err)
	}
	logger.Info("shutdown complete")
}
