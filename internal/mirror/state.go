package mirror

import (
	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/authority"
)

// NeutralDisplay is what the derived field renders when no amount can be
// derived. Downstream code must check the neutral flag, not compare against
// this string.
const NeutralDisplay = "—"

// State is the single mutable record behind one send flow. Raw amounts stay
// strings everywhere outside the engine; the synchronizer is the only writer
// of the derived field, and the user (via the session) the only writer of the
// authoritative one.
type State struct {
	Mode        authority.Mode
	FiatRaw     string
	AssetRaw    string
	Chain       common.Chain
	AssetSymbol string
	PriceUSD    float64
	Focused     map[authority.Field]bool

	// Neutral marks that the derived field currently has no value and
	// renders the sentinel.
	Neutral bool
}

// NewState returns a neutral fiat-authoritative state, the shape a send flow
// starts in.
func NewState() *State {
	return &State{
		Mode:    authority.Default,
		Neutral: true,
		Focused: map[authority.Field]bool{},
	}
}

// Reset returns the state to its initial neutral shape. Selection and price
// are cleared too; the next selection brings them back.
func (s *State) Reset() {
	*s = *NewState()
}

// ToggleMode flips which field is authoritative. No recalculation happens
// here and neither raw value may change.
func (s *State) ToggleMode() {
	s.Mode = s.Mode.Toggle()
}

// SetFocus records a focus transition observed by the UI adapter.
func (s *State) SetFocus(field authority.Field, focused bool) {
	s.Focused[field] = focused
}

// SelectAsset updates the chain/asset pair. Raw values are intentionally kept
// so the follow-up sync re-derives from the existing authoritative input. A
// price snapshot belongs to one symbol, so switching assets invalidates it
// until the next fetch lands.
func (s *State) SelectAsset(symbol string, chain common.Chain) {
	if symbol != s.AssetSymbol {
		s.PriceUSD = 0
	}
	s.AssetSymbol = symbol
	s.Chain = chain
}

// SetPrice stores a price snapshot. Zero or negative means unavailable.
func (s *State) SetPrice(priceUSD float64) {
	s.PriceUSD = priceUSD
}

// SetAuthoritativeRaw writes user input into whichever field is currently
// authoritative. The derived field is not reachable through here.
func (s *State) SetAuthoritativeRaw(value string) {
	if s.Mode.Authoritative() == authority.FieldFiat {
		s.FiatRaw = value
		return
	}
	s.AssetRaw = value
}

// AuthoritativeRaw returns the current authoritative value.
func (s *State) AuthoritativeRaw() string {
	if s.Mode.Authoritative() == authority.FieldFiat {
		return s.FiatRaw
	}
	return s.AssetRaw
}

// Display resolves what a field should render. The derived field shows the
// sentinel while the state is neutral.
func (s *State) Display(field authority.Field) (value string, neutral bool) {
	if s.Neutral && field == s.Mode.Derived() {
		return NeutralDisplay, true
	}
	if field == authority.FieldFiat {
		return s.FiatRaw, false
	}
	return s.AssetRaw, false
}
