// Package mirror keeps the fiat and asset amount fields consistent. One field
// is authoritative (user-owned), the other is derived; a synchronization pass
// reads the authoritative string, converts it through the amount engine, and
// writes the result into the derived field unless the user is editing that
// field right now.
package mirror

import (
	"github.com/vultisig/app-send/internal/amount"
	"github.com/vultisig/app-send/internal/authority"
)

// Outcome says what a synchronization pass did.
type Outcome string

const (
	// OutcomeApplied means the derived field was rewritten.
	OutcomeApplied Outcome = "applied"
	// OutcomeNeutral means no positive amount was derivable and the derived
	// field was put into the neutral state.
	OutcomeNeutral Outcome = "neutral"
	// OutcomeBarrierSkip means the derived field is focused, so the pass left
	// it untouched. The next triggering event re-attempts.
	OutcomeBarrierSkip Outcome = "barrier_skip"
	// OutcomeAborted means no asset is selected, so there is nothing to
	// derive against.
	OutcomeAborted Outcome = "aborted"
)

// Result describes one pass over the state.
type Result struct {
	Outcome Outcome
	Target  authority.Field
	Written string
}

// Sync runs one synchronization pass. It is synchronous, idempotent, and safe
// to call after any amount-relevant event. Only the derived field is ever
// written; the authoritative field is read as an untouched string.
func Sync(s *State) Result {
	target := s.Mode.Derived()

	if s.AssetSymbol == "" {
		return Result{Outcome: OutcomeAborted, Target: target}
	}

	var derived float64
	var ok bool
	if s.Mode == authority.ModeFiat {
		derived, ok = amount.DeriveFromFiat(s.FiatRaw, s.PriceUSD, s.Chain)
	} else {
		derived, ok = amount.DeriveFromAsset(s.AssetRaw, s.PriceUSD)
	}

	if !ok || derived <= 0 {
		// Missing price and invalid input end up here too; they all render
		// the same neutral display.
		if s.Focused[target] {
			return Result{Outcome: OutcomeBarrierSkip, Target: target}
		}
		s.Neutral = true
		if target == authority.FieldAsset {
			s.AssetRaw = ""
		} else {
			s.FiatRaw = ""
		}
		return Result{Outcome: OutcomeNeutral, Target: target}
	}

	if s.Focused[target] {
		return Result{Outcome: OutcomeBarrierSkip, Target: target}
	}

	var formatted string
	if target == authority.FieldAsset {
		formatted = amount.FormatAsset(derived)
		s.AssetRaw = formatted
	} else {
		formatted = amount.FormatFiat(derived)
		s.FiatRaw = formatted
	}
	s.Neutral = false

	return Result{Outcome: OutcomeApplied, Target: target, Written: formatted}
}
