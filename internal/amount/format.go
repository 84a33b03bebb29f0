package amount

import (
	"github.com/shopspring/decimal"
)

// displayFractionCap limits how many fractional digits the derived asset
// field shows. Derivation still happens at the chain's full precision; only
// the rendered string is capped.
const displayFractionCap = 6

// FormatAsset renders a derived asset amount as a plain decimal string.
// shopspring/decimal never emits scientific notation, so values that
// strconv would print as 4.4435e-05 come out expanded.
func FormatAsset(value float64) string {
	d := decimal.NewFromFloat(value)
	if d.Exponent() < -displayFractionCap {
		d = d.Round(displayFractionCap)
	}
	return d.String()
}

// FormatFiat renders a fiat amount with exactly two fractional digits.
func FormatFiat(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(FiatDecimals)
}
