package catalog

import "github.com/mrz1836/sigil/internal/domain"

// Built-in fallback catalog. Used when the catalog service is unreachable or
// returns nothing usable, so the well-known families stay available in a
// fully offline setup. Ids here double as names the crypto service accepts.

// fallbackAlgorithms returns the built-in algorithm list. Never empty.
func fallbackAlgorithms() []domain.Algorithm {
	return []domain.Algorithm{
		{
			ID:          "ECDSA",
			Name:        "ECDSA",
			Family:      domain.FamilyECDSA,
			Description: "Elliptic Curve Digital Signature Algorithm",
			IsDefault:   true,
		},
		{
			ID:          "RSA",
			Name:        "RSA",
			Family:      domain.FamilyRSA,
			Description: "RSA signature scheme",
		},
		{
			ID:          "EdDSA",
			Name:        "EdDSA",
			Family:      domain.FamilyEdDSA,
			Description: "Edwards-curve Digital Signature Algorithm",
		},
	}
}

// fallbackCurves returns the built-in curves for an algorithm id or name.
// Unknown algorithms yield nil; the caller surfaces the empty state.
func fallbackCurves(algorithmID string) []domain.Curve {
	switch algorithmID {
	case "ECDSA", "ecdsa":
		return []domain.Curve{
			{ID: "secp256k1", Name: "secp256k1", AlgorithmID: "ECDSA", BitSize: 256, Status: domain.CurveEnabled,
				Description: "SECG curve over a 256 bit prime field (Koblitz)"},
			{ID: "secp256r1", Name: "secp256r1", AlgorithmID: "ECDSA", BitSize: 256, Status: domain.CurveEnabled,
				Description: "NIST P-256"},
			{ID: "secp384r1", Name: "secp384r1", AlgorithmID: "ECDSA", BitSize: 384, Status: domain.CurveEnabled,
				Description: "NIST P-384"},
			{ID: "secp521r1", Name: "secp521r1", AlgorithmID: "ECDSA", BitSize: 521, Status: domain.CurveEnabled,
				Description: "NIST P-521"},
		}
	case "RSA", "rsa":
		return []domain.Curve{
			{ID: "RSA-2048", Name: "RSA-2048", AlgorithmID: "RSA", BitSize: 2048, Status: domain.CurveEnabled,
				Description: "RSA with 2048-bit modulus"},
			{ID: "RSA-3072", Name: "RSA-3072", AlgorithmID: "RSA", BitSize: 3072, Status: domain.CurveEnabled,
				Description: "RSA with 3072-bit modulus"},
			{ID: "RSA-4096", Name: "RSA-4096", AlgorithmID: "RSA", BitSize: 4096, Status: domain.CurveEnabled,
				Description: "RSA with 4096-bit modulus"},
		}
	case "EdDSA", "eddsa":
		return []domain.Curve{
			{ID: "Ed25519", Name: "Ed25519", AlgorithmID: "EdDSA", BitSize: 256, Status: domain.CurveEnabled,
				Description: "Edwards curve 25519"},
		}
	default:
		return nil
	}
}
