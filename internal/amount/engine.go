package amount

import (
	"math"
	"strconv"
	"strings"

	"github.com/vultisig/vultisig-go/common"
)

// DisplayDecimals maps chain to the decimal precision used when deriving an
// asset amount from fiat. Fiat side is always 2.
var DisplayDecimals = map[common.Chain]int{
	common.Ethereum:  6,
	common.Arbitrum:  6,
	common.Avalanche: 6,
	common.Base:      6,
	common.Optimism:  6,
	common.Polygon:   6,
	common.BscChain:  6,
	common.Solana:    6,
	common.Bitcoin:   8,
}

// FiatDecimals is the fixed precision of the fiat side.
const FiatDecimals = 2

// DecimalsFor returns the derivation precision for a chain, 0 if unknown.
func DecimalsFor(chain common.Chain) int {
	if d, ok := DisplayDecimals[chain]; ok {
		return d
	}
	return 0
}

// Parse converts user-entered text to a number. Empty or non-numeric input
// returns ok=false; negative values clamp to 0. It never panics.
func Parse(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	return f, true
}

// Round rounds half-up at the given number of decimals via integer scaling.
// Invalid input (NaN, Inf, negative decimals) returns ok=false.
func Round(value float64, decimals int) (float64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || decimals < 0 {
		return 0, false
	}
	p := math.Pow(10, float64(decimals))
	return math.Floor(value*p+0.5) / p, true
}

// DeriveFromFiat converts a fiat amount string to the asset amount at the
// chain's precision. Requires a positive price; an explicit fiat zero derives
// zero rather than failing.
func DeriveFromFiat(fiatRaw string, priceUSD float64, chain common.Chain) (float64, bool) {
	f, ok := Parse(fiatRaw)
	if !ok || priceUSD <= 0 {
		return 0, false
	}
	if f == 0 {
		return 0, true
	}
	return Round(f/priceUSD, DecimalsFor(chain))
}

// DeriveFromAsset converts an asset amount string to its fiat value, always
// at fiat precision.
func DeriveFromAsset(assetRaw string, priceUSD float64) (float64, bool) {
	a, ok := Parse(assetRaw)
	if !ok || priceUSD <= 0 {
		return 0, false
	}
	if a == 0 {
		return 0, true
	}
	return Round(a*priceUSD, FiatDecimals)
}
