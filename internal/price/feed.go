// Package price supplies USD price snapshots and gas estimates for the send
// flow. Unavailable data is a nil result, not an error: the mirroring engine
// degrades to its neutral display instead of failing.
package price

import (
	"context"

	"github.com/vultisig/vultisig-go/common"
)

// Gas is a coarse fee estimate in the chain's native fee unit.
type Gas struct {
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

// Feed is what the session consumes. Implementations must return (nil, nil)
// for "no data" and reserve errors for transport failures.
type Feed interface {
	AssetPriceUSD(ctx context.Context, symbol string) (*float64, error)
	GasEstimate(ctx context.Context, chain common.Chain) (*Gas, error)
}

// Service combines the CoinGecko price client with the gas estimator.
type Service struct {
	prices *CoinGecko
	gas    *GasFeed
}

func NewService(prices *CoinGecko, gas *GasFeed) *Service {
	return &Service{prices: prices, gas: gas}
}

func (s *Service) AssetPriceUSD(ctx context.Context, symbol string) (*float64, error) {
	return s.prices.AssetPriceUSD(ctx, symbol)
}

func (s *Service) GasEstimate(ctx context.Context, chain common.Chain) (*Gas, error) {
	return s.gas.GasEstimate(ctx, chain)
}
