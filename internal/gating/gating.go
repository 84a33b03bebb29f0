// Package gating decides whether amount editing is allowed at all, based
// solely on the recipient address and the selected chain/asset. It is
// independent of the amount state and makes no network calls.
package gating

import (
	"strings"

	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/address"
)

// nativeSymbol is the asset expected for each supported chain. The send flow
// covers native assets only.
var nativeSymbol = map[common.Chain]string{
	common.Ethereum:  "ETH",
	common.Arbitrum:  "ETH",
	common.Avalanche: "AVAX",
	common.Base:      "ETH",
	common.Optimism:  "ETH",
	common.Polygon:   "POL",
	common.BscChain:  "BNB",
	common.Bitcoin:   "BTC",
	common.Solana:    "SOL",
}

// Report is the gating snapshot recomputed on every address or selection
// change.
type Report struct {
	AddressPresent           bool `json:"addressPresent"`
	AddressStructurallyValid bool `json:"addressStructurallyValid"`
	ChainSupported           bool `json:"chainSupported"`
	ChainAssetMatch          bool `json:"chainAssetMatch"`
}

// Evaluate computes the report from the raw recipient text and the current
// selection.
func Evaluate(recipient string, chain common.Chain, assetSymbol string) Report {
	var r Report

	r.AddressPresent = strings.TrimSpace(recipient) != ""

	family, supported := address.FamilyFor(chain)
	r.ChainSupported = supported

	if supported && r.AddressPresent {
		r.AddressStructurallyValid = address.IsValidFormat(recipient, family)
	}

	if want, ok := nativeSymbol[chain]; ok {
		r.ChainAssetMatch = strings.EqualFold(assetSymbol, want)
	}

	return r
}

// Interaction classifies how the user reached the amount field. Intentional
// interactions get feedback when blocked; passive ones are blocked silently.
type Interaction string

const (
	InteractionClick     Interaction = "click"
	InteractionKeydown   Interaction = "keydown"
	InteractionMouseDown Interaction = "mousedown"
	InteractionDragStart Interaction = "drag_start"
	InteractionFocus     Interaction = "focus"
	InteractionTab       Interaction = "tab"
)

func (i Interaction) Intentional() bool {
	switch i {
	case InteractionClick, InteractionKeydown, InteractionMouseDown, InteractionDragStart:
		return true
	default:
		return false
	}
}

// FeedbackEnterAddress is surfaced when an intentional amount interaction is
// blocked.
const FeedbackEnterAddress = "enter a valid recipient address first"

// Decision is the outcome of an interaction check.
type Decision struct {
	Blocked  bool
	Feedback string
}

// AllowAmountInteraction blocks all amount-field interaction until the
// address is structurally valid.
func (r Report) AllowAmountInteraction(i Interaction) Decision {
	if r.AddressStructurallyValid {
		return Decision{}
	}
	d := Decision{Blocked: true}
	if i.Intentional() {
		d.Feedback = FeedbackEnterAddress
	}
	return d
}
