package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vultisig/vultisig-go/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain integer", input: "100", want: 100, ok: true},
		{name: "decimal", input: "0.5", want: 0.5, ok: true},
		{name: "leading dot", input: ".5", want: 0.5, ok: true},
		{name: "whitespace trimmed", input: " 42 ", want: 42, ok: true},
		{name: "negative clamps to zero", input: "-5", want: 0, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "letters", input: "abc", ok: false},
		{name: "mixed", input: "12a", ok: false},
		{name: "double dot", input: "1.2.3", ok: false},
		{name: "nan literal", input: "NaN", ok: false},
		{name: "inf literal", input: "Inf", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
		ok       bool
	}{
		{name: "half up at 6dp", value: 0.0444346, decimals: 6, want: 0.044435, ok: true},
		{name: "half up at boundary", value: 2.5, decimals: 0, want: 3, ok: true},
		// 1.005*100 is 100.4999... in binary, so this rounds down. Kept for
		// compatibility with the original integer-scaling behavior.
		{name: "binary representation quirk", value: 1.005, decimals: 2, want: 1.00, ok: true},
		{name: "two decimals", value: 1.234, decimals: 2, want: 1.23, ok: true},
		{name: "zero decimals", value: 1.6, decimals: 0, want: 2, ok: true},
		{name: "nan", value: math.NaN(), decimals: 2, ok: false},
		{name: "inf", value: math.Inf(1), decimals: 2, ok: false},
		{name: "negative decimals", value: 1, decimals: -1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Round(tt.value, tt.decimals)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDeriveFromFiat(t *testing.T) {
	t.Run("eth at 6dp", func(t *testing.T) {
		got, ok := DeriveFromFiat("100", 2250.50, common.Ethereum)
		require.True(t, ok)
		assert.Equal(t, 0.044435, got)
	})

	t.Run("explicit zero derives zero", func(t *testing.T) {
		got, ok := DeriveFromFiat("0", 2250.50, common.Ethereum)
		require.True(t, ok)
		assert.Equal(t, 0.0, got)
	})

	t.Run("zero price fails", func(t *testing.T) {
		_, ok := DeriveFromFiat("100", 0, common.Ethereum)
		assert.False(t, ok)
	})

	t.Run("negative price fails", func(t *testing.T) {
		_, ok := DeriveFromFiat("100", -1, common.Ethereum)
		assert.False(t, ok)
	})

	t.Run("btc at 8dp", func(t *testing.T) {
		got, ok := DeriveFromFiat("100", 60000, common.Bitcoin)
		require.True(t, ok)
		assert.Equal(t, 0.00166667, got)
	})

	t.Run("garbage input fails without panic", func(t *testing.T) {
		for _, input := range []string{"", "abc", "1..2", "1e", "--3", "∞"} {
			_, ok := DeriveFromFiat(input, 2250.50, common.Ethereum)
			assert.False(t, ok, "input %q", input)
		}
	})
}

func TestDeriveFromAsset(t *testing.T) {
	t.Run("always fiat precision", func(t *testing.T) {
		got, ok := DeriveFromAsset("0.044435", 2250.50)
		require.True(t, ok)
		assert.Equal(t, 100.0, got)
	})

	t.Run("zero asset derives zero", func(t *testing.T) {
		got, ok := DeriveFromAsset("0", 2250.50)
		require.True(t, ok)
		assert.Equal(t, 0.0, got)
	})

	t.Run("missing price fails", func(t *testing.T) {
		_, ok := DeriveFromAsset("1", 0)
		assert.False(t, ok)
	})
}

// Round-tripping fiat through the asset derivation and back must land within
// one unit of fiat rounding error.
func TestRoundTripStability(t *testing.T) {
	prices := []float64{0.031, 1, 142.7, 2250.50, 61234.99}
	fiats := []string{"0.01", "1", "42.42", "100", "999.99", "100000"}

	for _, price := range prices {
		for _, fiat := range fiats {
			asset, ok := DeriveFromFiat(fiat, price, common.Ethereum)
			require.True(t, ok)

			back, ok := DeriveFromAsset(FormatAsset(asset), price)
			require.True(t, ok)

			want, _ := Parse(fiat)
			want, _ = Round(want, FiatDecimals)
			assert.InDelta(t, want, back, want*0.001+0.011,
				"fiat=%s price=%v asset=%v back=%v", fiat, price, asset, back)
		}
	}
}

func TestDecimalsFor(t *testing.T) {
	assert.Equal(t, 6, DecimalsFor(common.Ethereum))
	assert.Equal(t, 6, DecimalsFor(common.Solana))
	assert.Equal(t, 8, DecimalsFor(common.Bitcoin))
	assert.Equal(t, 0, DecimalsFor(common.XRP))
}

func TestFormatAsset(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "typical derivation", value: 0.044435, want: "0.044435"},
		{name: "whole number", value: 3, want: "3"},
		{name: "no scientific notation", value: 0.000044, want: "0.000044"},
		{name: "fraction capped at six digits", value: 0.12345678, want: "0.123457"},
		{name: "zero", value: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAsset(tt.value))
		})
	}
}

func TestFormatFiat(t *testing.T) {
	assert.Equal(t, "100.00", FormatFiat(100))
	assert.Equal(t, "0.50", FormatFiat(0.5))
	assert.Equal(t, "1234.57", FormatFiat(1234.567))
}
