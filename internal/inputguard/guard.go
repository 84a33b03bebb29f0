// Package inputguard controls what text can enter the two amount fields.
// The asset field carries variable precision, so oversized input is rejected
// before insertion instead of truncated after; the fiat field has a hard
// two-decimal ceiling and tolerates truncation.
package inputguard

import (
	"strings"
	"time"

	"github.com/vultisig/app-send/internal/authority"
)

// MaxAssetDigits caps total digits (separator excluded) in the asset field.
// Enforced before any character is inserted, never by truncating afterwards.
const MaxAssetDigits = 17

const (
	NoticePrecisionLimit = "maximum precision reached"
	NoticePasteBlocked   = "pasting into amount fields is not supported"
	NoticeKeyBlocked     = "only numeric input is allowed"
)

// noticeWindow debounces user-facing notices so a held-down key produces one
// message, not a stream.
const noticeWindow = 2 * time.Second

// Key is the UI adapter's rendering of a keystroke.
type Key struct {
	Value string `json:"value"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
}

// Verdict is the outcome of a guard check. Notice is empty when nothing
// should be surfaced to the user.
type Verdict struct {
	Allow  bool
	Notice string
}

// SanitizeResult reports the post-insertion cleanup of a field value.
type SanitizeResult struct {
	Value      string
	Changed    bool
	CaretToEnd bool
}

// Guard holds the debounce clock for notices. Zero value is not usable; use
// New.
type Guard struct {
	now        func() time.Time
	lastNotice time.Time
}

func New() *Guard {
	return &Guard{now: time.Now}
}

// DigitCount counts decimal digits, ignoring the separator.
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// FilterKey decides whether a keystroke may reach the field at all.
func (g *Guard) FilterKey(field authority.Field, current string, k Key) Verdict {
	if k.Ctrl || k.Meta {
		switch strings.ToLower(k.Value) {
		case "c", "a", "x":
			// Copy and selection stay available; paste comes in as its own
			// event and is rejected there.
			return Verdict{Allow: true}
		case "v":
			return Verdict{Notice: g.notice(NoticePasteBlocked)}
		default:
			return Verdict{Allow: true}
		}
	}

	switch k.Value {
	case "Backspace", "Delete", "Tab", "Home", "End",
		"ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown":
		return Verdict{Allow: true}
	case "Enter":
		return Verdict{}
	case ".":
		if strings.Contains(current, ".") {
			return Verdict{}
		}
		return Verdict{Allow: true}
	}

	if len(k.Value) == 1 && k.Value[0] >= '0' && k.Value[0] <= '9' {
		if field == authority.FieldAsset && DigitCount(current) >= MaxAssetDigits {
			return Verdict{Notice: g.notice(NoticePrecisionLimit)}
		}
		return Verdict{Allow: true}
	}

	// Everything else: letters, symbols, and in particular e/E/+/- which
	// would smuggle exponential or signed forms past the parser.
	return Verdict{Notice: g.notice(NoticeKeyBlocked)}
}

// CheckInsert guards a multi-character insertion (drop, IME, programmatic
// set) against the asset digit cap before it lands. Rejection means the field
// keeps its previous value with nothing lost.
func (g *Guard) CheckInsert(field authority.Field, current, incoming string) Verdict {
	if field == authority.FieldAsset &&
		DigitCount(current)+DigitCount(incoming) > MaxAssetDigits {
		return Verdict{Notice: g.notice(NoticePrecisionLimit)}
	}
	return Verdict{Allow: true}
}

// Paste is rejected unconditionally on both fields; pasted text routinely
// carries thousands separators, currency symbols, or exponents.
func (g *Guard) Paste() Verdict {
	return Verdict{Notice: g.notice(NoticePasteBlocked)}
}

// Sanitize strips anything that is not a digit or a single decimal point.
// This is the backstop for input that bypassed FilterKey. The fiat field is
// additionally truncated to its two-decimal ceiling. If sanitation changed
// the value the caret moves to the end.
func Sanitize(field authority.Field, value string) SanitizeResult {
	var b strings.Builder
	seenDot := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if field == authority.FieldFiat {
		if i := strings.IndexByte(clean, '.'); i >= 0 && len(clean) > i+3 {
			clean = clean[:i+3]
		}
	}

	changed := clean != value
	return SanitizeResult{Value: clean, Changed: changed, CaretToEnd: changed}
}

// notice returns the message at most once per debounce window.
func (g *Guard) notice(msg string) string {
	now := g.now()
	if now.Sub(g.lastNotice) < noticeWindow {
		return ""
	}
	g.lastNotice = now
	return msg
}
