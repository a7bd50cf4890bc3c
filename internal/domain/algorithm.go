// Package domain provides shared domain types for the sigil signing client.
package domain

// Family represents a signature algorithm family.
type Family string

// Family constants define the recognized algorithm families.
const (
	// FamilyECDSA is the elliptic-curve digital signature family.
	FamilyECDSA Family = "elliptic-curve"

	// FamilyRSA is the RSA signature family.
	FamilyRSA Family = "rsa"

	// FamilyEdDSA is the Edwards-curve digital signature family.
	FamilyEdDSA Family = "edwards-curve"

	// FamilyOther covers families the client has no special handling for.
	FamilyOther Family = "other"
)

// String returns the string representation of the Family.
// This implements fmt.Stringer for convenient logging and debugging.
func (f Family) String() string {
	return string(f)
}

// IsValid checks if the family is a recognized type.
func (f Family) IsValid() bool {
	switch f {
	case FamilyECDSA, FamilyRSA, FamilyEdDSA, FamilyOther:
		return true
	}
	return false
}

// ParseFamily maps the loose family strings seen across backend versions onto
// the canonical Family constants. Unknown values map to FamilyOther rather
// than failing, because the catalog is authoritative for families the client
// has never seen.
func ParseFamily(s string) Family {
	switch s {
	case "elliptic-curve", "ec", "ecdsa", "EC-DSA", "ECDSA":
		return FamilyECDSA
	case "rsa", "RSA":
		return FamilyRSA
	case "edwards-curve", "eddsa", "ed25519", "Edwards-DSA", "EdDSA":
		return FamilyEdDSA
	default:
		return FamilyOther
	}
}

// Algorithm is a signature scheme offered by the remote catalog. Algorithms
// are created and updated only by the administrative service; the client
// treats them as read-only. ID is stable and is the join key used by Curve.
type Algorithm struct {
	// ID uniquely identifies the algorithm in the catalog.
	ID string `json:"id"`

	// Name is the human-readable algorithm name (e.g. "ECDSA").
	Name string `json:"name"`

	// Family classifies the algorithm's mathematical family.
	Family Family `json:"type"`

	// Description is free-form text from the catalog.
	Description string `json:"description,omitempty"`

	// IsDefault marks the algorithm the catalog suggests when the user has
	// not chosen one.
	IsDefault bool `json:"is_default"`
}

// CurveStatus represents the administrative status of a curve.
type CurveStatus string

// CurveStatus constants.
const (
	// CurveEnabled means the curve may be offered and selected.
	CurveEnabled CurveStatus = "enabled"

	// CurveDisabled means the curve must never be offered as a selectable
	// default and must never be silently auto-selected.
	CurveDisabled CurveStatus = "disabled"
)

// Curve is a named parameter set for an algorithm family: elliptic-curve
// domain parameters, or an RSA key-size profile. Every curve references
// exactly one algorithm.
type Curve struct {
	// ID uniquely identifies the curve in the catalog.
	ID string `json:"id"`

	// Name is the canonical curve name (e.g. "secp256k1", "RSA-2048").
	Name string `json:"name"`

	// AlgorithmID joins the curve to its owning algorithm.
	AlgorithmID string `json:"algorithm_id"`

	// BitSize is the curve's security parameter in bits.
	BitSize int `json:"bit_size,omitempty"`

	// Description is free-form text from the catalog.
	Description string `json:"description,omitempty"`

	// Parameters carries the opaque parameter map served by the catalog.
	// The client only inspects the optional hash_algorithm hint; everything
	// else is forwarded untouched.
	Parameters map[string]any `json:"parameters,omitempty"`

	// Status is the administrative enabled/disabled flag.
	Status CurveStatus `json:"status"`
}

// Enabled reports whether the curve may be offered to the user. An empty
// status is treated as enabled because older catalog versions omit the field.
func (c Curve) Enabled() bool {
	return c.Status != CurveDisabled
}

// DigestHint returns the explicit digest algorithm hint from the curve
// parameters, or empty when the catalog supplied none. A curve-supplied hint
// always wins over the client's static table, because the catalog is the
// authority on parameter sets the table cannot know about.
func (c Curve) DigestHint() string {
	if c.Parameters == nil {
		return ""
	}
	hint, _ := c.Parameters["hash_algorithm"].(string)
	return hint
}
