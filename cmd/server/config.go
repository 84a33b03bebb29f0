package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/vultisig/app-send/internal/logging"
	"github.com/vultisig/app-send/internal/metrics"
	"github.com/vultisig/app-send/internal/server"
)

type config struct {
	LogFormat logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	Server    server.Config
	Metrics   metrics.Config

	// CoinGeckoURL overrides the public API, mainly for tests and proxies.
	CoinGeckoURL string `envconfig:"COINGECKO_URL" default:""`
	// EvmRPC enables live gas estimates when set; static table otherwise.
	EvmRPC string `envconfig:"EVM_RPC" default:""`
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
