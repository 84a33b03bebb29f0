package price

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vultisig/verifier/plugin/libhttp"
)

const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// defaultIDs maps ticker symbols to CoinGecko asset identifiers.
var defaultIDs = map[string]string{
	"ETH":  "ethereum",
	"BTC":  "bitcoin",
	"SOL":  "solana",
	"AVAX": "avalanche-2",
	"BNB":  "binancecoin",
	"POL":  "polygon-ecosystem-token",
}

// CoinGecko adapts the public simple-price API.
type CoinGecko struct {
	baseURL string
	ids     map[string]string
}

func NewCoinGecko(baseURL string) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		ids:     defaultIDs,
	}
}

type simplePrice struct {
	USD float64 `json:"usd"`
}

// AssetPriceUSD returns the current USD price for a symbol, nil when the
// symbol is unknown or the upstream has no quote.
func (c *CoinGecko) AssetPriceUSD(ctx context.Context, symbol string) (*float64, error) {
	id, ok := c.ids[strings.ToUpper(symbol)]
	if !ok {
		return nil, nil
	}

	res, err := libhttp.Call[map[string]simplePrice](
		ctx,
		http.MethodGet,
		c.baseURL+"/simple/price",
		nil,
		nil,
		map[string]string{
			"ids":           id,
			"vs_currencies": "usd",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price for %s: %w", symbol, err)
	}

	quote, ok := res[id]
	if !ok || quote.USD <= 0 {
		return nil, nil
	}
	return &quote.USD, nil
}
