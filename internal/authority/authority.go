// Package authority tracks which amount field is the source of truth for the
// send flow. The mode changes only on an explicit user toggle, never as a
// side effect of focus or data refreshes, and changing it never touches the
// field values themselves.
package authority

// Field identifies one of the two amount inputs.
type Field string

const (
	FieldFiat  Field = "fiat"
	FieldAsset Field = "asset"
)

// Mode names the authoritative field.
type Mode string

const (
	ModeFiat  Mode = "fiat"
	ModeAsset Mode = "asset"
)

// Default is the mode a fresh send flow starts in.
const Default = ModeFiat

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeFiat || m == ModeAsset
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeFiat {
		return ModeAsset
	}
	return ModeFiat
}

// Authoritative returns the field the user types into in this mode. The
// system must never write it.
func (m Mode) Authoritative() Field {
	if m == ModeAsset {
		return FieldAsset
	}
	return FieldFiat
}

// Derived returns the field the synchronizer is allowed to write.
func (m Mode) Derived() Field {
	if m == ModeAsset {
		return FieldFiat
	}
	return FieldAsset
}
