package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/authority"
)

func ethState() *State {
	s := NewState()
	s.SelectAsset("ETH", common.Ethereum)
	s.SetPrice(2250.50)
	return s
}

func TestSyncFiatMode(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"

	res := Sync(s)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, authority.FieldAsset, res.Target)
	assert.Equal(t, "0.044435", s.AssetRaw)
	assert.Equal(t, "100", s.FiatRaw, "authoritative field must stay untouched")
	assert.False(t, s.Neutral)
}

func TestSyncAssetMode(t *testing.T) {
	s := ethState()
	s.ToggleMode()
	s.AssetRaw = "0.5"

	res := Sync(s)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, authority.FieldFiat, res.Target)
	assert.Equal(t, "1125.25", s.FiatRaw)
	assert.Equal(t, "0.5", s.AssetRaw)
}

func TestSyncAbortsWithoutAsset(t *testing.T) {
	s := NewState()
	s.FiatRaw = "100"
	s.SetPrice(2250.50)

	res := Sync(s)

	assert.Equal(t, OutcomeAborted, res.Outcome)
	assert.Equal(t, "100", s.FiatRaw)
	assert.Empty(t, s.AssetRaw)
}

func TestSyncMissingPriceGoesNeutral(t *testing.T) {
	s := NewState()
	s.SelectAsset("ETH", common.Ethereum)
	s.FiatRaw = "100"

	res := Sync(s)

	assert.Equal(t, OutcomeNeutral, res.Outcome)
	assert.True(t, s.Neutral)

	display, neutral := s.Display(authority.FieldAsset)
	assert.True(t, neutral)
	assert.Equal(t, NeutralDisplay, display)
}

func TestSyncZeroFiatGoesNeutral(t *testing.T) {
	s := ethState()
	s.FiatRaw = "0"

	res := Sync(s)

	assert.Equal(t, OutcomeNeutral, res.Outcome)
	assert.True(t, s.Neutral)
}

func TestNeutralToValueTransition(t *testing.T) {
	s := ethState()

	res := Sync(s)
	require.Equal(t, OutcomeNeutral, res.Outcome)

	s.FiatRaw = "50"
	res = Sync(s)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.False(t, s.Neutral)

	display, neutral := s.Display(authority.FieldAsset)
	assert.False(t, neutral)
	assert.NotEqual(t, NeutralDisplay, display)
	assert.Equal(t, "0.022217", display)
}

// If the asset field is focused, a fiat-mode pass must leave it byte-for-byte
// unchanged, whatever it contains.
func TestWriteBarrier(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"
	s.AssetRaw = "1.2"
	s.SetFocus(authority.FieldAsset, true)

	res := Sync(s)

	assert.Equal(t, OutcomeBarrierSkip, res.Outcome)
	assert.Equal(t, "1.2", s.AssetRaw)

	// Same under a would-be neutral transition.
	s.FiatRaw = ""
	res = Sync(s)

	assert.Equal(t, OutcomeBarrierSkip, res.Outcome)
	assert.Equal(t, "1.2", s.AssetRaw)
	assert.False(t, s.Neutral)

	// Releasing focus lets the next pass through.
	s.SetFocus(authority.FieldAsset, false)
	s.FiatRaw = "100"
	res = Sync(s)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, "0.044435", s.AssetRaw)
}

func TestTogglePreservesRawValues(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"
	Sync(s)
	asset := s.AssetRaw

	s.ToggleMode()

	assert.Equal(t, "100", s.FiatRaw)
	assert.Equal(t, asset, s.AssetRaw)
	assert.Equal(t, authority.ModeAsset, s.Mode)
}

func TestSelectAssetKeepsAuthoritativeRaw(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"
	Sync(s)

	s.SelectAsset("BTC", common.Bitcoin)
	s.SetPrice(60000)
	res := Sync(s)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, "100", s.FiatRaw, "chain change must not reset the amount")
	assert.Equal(t, "0.001667", s.AssetRaw)
}

func TestSelectAssetInvalidatesPrice(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"
	Sync(s)

	s.SelectAsset("BTC", common.Bitcoin)
	res := Sync(s)

	// The ETH quote must not price BTC; the field stays neutral until a
	// fresh snapshot lands.
	require.Equal(t, OutcomeNeutral, res.Outcome)
	assert.True(t, s.Neutral)
}

func TestSyncIdempotent(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"

	first := Sync(s)
	second := Sync(s)

	assert.Equal(t, first, second)
	assert.Equal(t, "0.044435", s.AssetRaw)
}

func TestReset(t *testing.T) {
	s := ethState()
	s.FiatRaw = "100"
	Sync(s)

	s.Reset()

	assert.Equal(t, authority.ModeFiat, s.Mode)
	assert.Empty(t, s.FiatRaw)
	assert.Empty(t, s.AssetRaw)
	assert.True(t, s.Neutral)
	assert.Empty(t, s.AssetSymbol)
}
