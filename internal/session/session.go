// Package session owns one send flow: the amount state, the input guard, the
// gating report, and the price feed plumbing around them. All state lives in
// an explicitly owned Session, never in package globals; the transport layer
// holds one Session per connection and feeds it UI events.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/authority"
	"github.com/vultisig/app-send/internal/gating"
	"github.com/vultisig/app-send/internal/inputguard"
	"github.com/vultisig/app-send/internal/metrics"
	"github.com/vultisig/app-send/internal/mirror"
	"github.com/vultisig/app-send/internal/price"
)

const fetchTimeout = 10 * time.Second

// FieldUpdate tells the UI what one field should render.
type FieldUpdate struct {
	Field      authority.Field `json:"field"`
	Value      string          `json:"value"`
	Neutral    bool            `json:"neutral"`
	CaretToEnd bool            `json:"caretToEnd,omitempty"`
}

// Update is one push to the UI.
type Update struct {
	Fields []FieldUpdate  `json:"fields,omitempty"`
	Mode   authority.Mode `json:"mode,omitempty"`
	Gate   *gating.Report `json:"gate,omitempty"`
	Gas    *price.Gas     `json:"gas,omitempty"`
	Notice string         `json:"notice,omitempty"`
}

// Session is safe for the one-reader-plus-fetch-callbacks access pattern the
// server uses; the mutex covers the fetch goroutines landing their results.
type Session struct {
	mu sync.Mutex

	logger *logrus.Logger
	feed   price.Feed
	guard  *inputguard.Guard
	state  *mirror.State

	recipient string
	gate      gating.Report
	gas       *price.Gas

	// fetchSeq implements last-write-wins for in-flight price fetches:
	// results arriving under a stale sequence number are dropped.
	fetchSeq uint64

	emit func(Update)
}

func New(logger *logrus.Logger, feed price.Feed, emit func(Update)) *Session {
	if emit == nil {
		emit = func(Update) {}
	}
	return &Session{
		logger: logger,
		feed:   feed,
		guard:  inputguard.New(),
		state:  mirror.NewState(),
		emit:   emit,
	}
}

// OnAmountRelevantEvent runs a synchronization pass and pushes the resulting
// field state. Idempotent and safe to call redundantly after any
// amount-relevant event.
func (s *Session) OnAmountRelevantEvent() {
	s.mu.Lock()
	update := s.syncLocked()
	s.mu.Unlock()
	s.emit(update)
}

// HandleInput applies user text to the authoritative field. Non-authoritative
// input is ignored: the system is the only writer of the derived field.
func (s *Session) HandleInput(field authority.Field, value string) {
	s.mu.Lock()
	if field != s.state.Mode.Authoritative() {
		s.mu.Unlock()
		return
	}
	if d := s.gate.AllowAmountInteraction(gating.InteractionKeydown); d.Blocked {
		s.mu.Unlock()
		s.emit(Update{Notice: d.Feedback})
		return
	}

	res := inputguard.Sanitize(field, value)
	if v := s.guard.CheckInsert(field, "", res.Value); !v.Allow {
		// Over the digit cap: the field keeps its previous value.
		s.mu.Unlock()
		metrics.RecordGuardRejection("digit_cap")
		if v.Notice != "" {
			s.emit(Update{Notice: v.Notice})
		}
		return
	}
	s.state.SetAuthoritativeRaw(res.Value)
	update := s.syncLocked()
	if res.Changed {
		for i := range update.Fields {
			if update.Fields[i].Field == field {
				update.Fields[i].CaretToEnd = true
			}
		}
	}
	s.mu.Unlock()
	s.emit(update)
}

// HandleKey filters a keystroke before it reaches a field. Returns whether
// the UI should let it through.
func (s *Session) HandleKey(field authority.Field, k inputguard.Key) bool {
	s.mu.Lock()
	if d := s.gate.AllowAmountInteraction(gating.InteractionKeydown); d.Blocked {
		s.mu.Unlock()
		s.emit(Update{Notice: d.Feedback})
		return false
	}

	current, _ := s.state.Display(field)
	if field == s.state.Mode.Authoritative() {
		current = s.state.AuthoritativeRaw()
	}
	v := s.guard.FilterKey(field, current, k)
	s.mu.Unlock()

	if !v.Allow {
		metrics.RecordGuardRejection("key")
	}
	if v.Notice != "" {
		s.emit(Update{Notice: v.Notice})
	}
	return v.Allow
}

// HandleInsert guards a multi-character insertion into the authoritative
// field, applying it only when the digit cap allows the whole chunk.
func (s *Session) HandleInsert(field authority.Field, incoming string) {
	s.mu.Lock()
	if field != s.state.Mode.Authoritative() {
		s.mu.Unlock()
		return
	}
	current := s.state.AuthoritativeRaw()
	v := s.guard.CheckInsert(field, current, incoming)
	if !v.Allow {
		s.mu.Unlock()
		metrics.RecordGuardRejection("digit_cap")
		if v.Notice != "" {
			s.emit(Update{Notice: v.Notice})
		}
		return
	}
	res := inputguard.Sanitize(field, current+incoming)
	s.state.SetAuthoritativeRaw(res.Value)
	update := s.syncLocked()
	s.mu.Unlock()
	s.emit(update)
}

// HandlePaste rejects the paste and tells the user once per debounce window.
func (s *Session) HandlePaste(authority.Field) {
	s.mu.Lock()
	v := s.guard.Paste()
	s.mu.Unlock()

	metrics.RecordGuardRejection("paste")
	if v.Notice != "" {
		s.emit(Update{Notice: v.Notice})
	}
}

// HandleFocus records a focus transition. A focus attempt while gated is
// refused; feedback depends on whether the interaction was intentional.
func (s *Session) HandleFocus(field authority.Field, focused bool, via gating.Interaction) bool {
	s.mu.Lock()
	if focused {
		if d := s.gate.AllowAmountInteraction(via); d.Blocked {
			s.mu.Unlock()
			if d.Feedback != "" {
				s.emit(Update{Notice: d.Feedback})
			}
			return false
		}
	}
	s.state.SetFocus(field, focused)
	var update Update
	if !focused {
		// Blur lifts the write barrier; re-attempt the pending derivation.
		update = s.syncLocked()
	}
	s.mu.Unlock()
	if !focused {
		s.emit(update)
	}
	return true
}

// ToggleMode flips the authoritative field. Raw values are untouched; only
// writability changes, then a pass re-derives.
func (s *Session) ToggleMode() {
	s.mu.Lock()
	s.state.ToggleMode()
	update := s.syncLocked()
	update.Mode = s.state.Mode
	s.mu.Unlock()
	s.emit(update)
}

// SelectAsset switches the chain/asset pair. The authoritative raw value is
// preserved and re-derived once the new price lands.
func (s *Session) SelectAsset(symbol string, chain common.Chain) {
	s.mu.Lock()
	s.state.SelectAsset(symbol, chain)
	s.refreshGateLocked()
	update := s.syncLocked()
	update.Gate = &s.gate
	seq, sym, ch := s.beginFetchLocked()
	s.mu.Unlock()

	s.emit(update)
	go s.fetch(seq, sym, ch)
}

// SetRecipient recomputes the gate from the new address text.
func (s *Session) SetRecipient(text string) {
	s.mu.Lock()
	s.recipient = text
	s.refreshGateLocked()
	gate := s.gate
	s.mu.Unlock()
	s.emit(Update{Gate: &gate})
}

// RefreshPrice re-requests price and gas for the current selection, e.g. on
// a periodic tick.
func (s *Session) RefreshPrice() {
	s.mu.Lock()
	if s.state.AssetSymbol == "" {
		s.mu.Unlock()
		return
	}
	seq, sym, ch := s.beginFetchLocked()
	s.mu.Unlock()
	go s.fetch(seq, sym, ch)
}

// Reset returns the flow to its neutral starting state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state.Reset()
	s.recipient = ""
	s.gas = nil
	s.gate = gating.Report{}
	s.fetchSeq++ // orphan any in-flight fetch
	update := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(update)
}

// Snapshot emits the full current state, used right after a client connects.
func (s *Session) Snapshot() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) beginFetchLocked() (seq uint64, symbol string, chain common.Chain) {
	s.fetchSeq++
	return s.fetchSeq, s.state.AssetSymbol, s.state.Chain
}

// fetch retrieves price and gas off the event path and lands the result only
// if no newer fetch started meanwhile.
func (s *Session) fetch(seq uint64, symbol string, chain common.Chain) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	p, err := s.feed.AssetPriceUSD(ctx, symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("price fetch failed")
		metrics.RecordPriceFetch("error")
		p = nil
	}
	gas, gasErr := s.feed.GasEstimate(ctx, chain)
	if gasErr != nil {
		s.logger.WithError(gasErr).WithField("chain", chain).Debug("gas fetch failed")
		gas = nil
	}

	s.mu.Lock()
	if seq != s.fetchSeq {
		s.mu.Unlock()
		metrics.RecordPriceFetch("superseded")
		return
	}
	switch {
	case p != nil:
		s.state.SetPrice(*p)
		metrics.RecordPriceFetch("ok")
	case err == nil:
		// Upstream has no quote for this asset at all.
		s.state.SetPrice(0)
		metrics.RecordPriceFetch("unavailable")
	default:
		// Transient failure: keep the last good snapshot rather than
		// flipping a derived value back to neutral. Selection changes
		// clear it instead.
	}
	s.gas = gas
	update := s.syncLocked()
	update.Gas = gas
	s.mu.Unlock()

	s.emit(update)
}

func (s *Session) refreshGateLocked() {
	s.gate = gating.Evaluate(s.recipient, s.state.Chain, s.state.AssetSymbol)
}

func (s *Session) syncLocked() Update {
	res := mirror.Sync(s.state)
	metrics.RecordSyncPass(string(res.Outcome))
	if res.Outcome == mirror.OutcomeBarrierSkip {
		metrics.RecordBarrierSkip(string(res.Target))
	}
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Update {
	fiat, fiatNeutral := s.state.Display(authority.FieldFiat)
	asset, assetNeutral := s.state.Display(authority.FieldAsset)
	return Update{
		Mode: s.state.Mode,
		Fields: []FieldUpdate{
			{Field: authority.FieldFiat, Value: fiat, Neutral: fiatNeutral},
			{Field: authority.FieldAsset, Value: asset, Neutral: assetNeutral},
		},
		Gas: s.gas,
	}
}
