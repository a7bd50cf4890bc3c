package tui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mrz1836/sigil/internal/domain"
)

// WriteSignResult renders a completed signing as labeled fields. The raw
// signature line is left unstyled so it can be copied cleanly.
func WriteSignResult(w io.Writer, result domain.SignResult) {
	styles := NewOutputStyles()

	writeField(w, styles, "Signature", result.Signature)
	writeField(w, styles, "Digest", result.Fingerprint.DigestAlgorithm)
	writeField(w, styles, "Fingerprint", result.Fingerprint.EncodedValue)
	if result.CurveName != "" {
		writeField(w, styles, "Curve", result.CurveName)
	}
	if result.SigningID != "" {
		writeField(w, styles, "Signing ID", result.SigningID)
	}
	if !result.SigningTime.IsZero() {
		writeField(w, styles, "Signed at", result.SigningTime.Format(time.RFC3339))
	}
	if result.PublicKey != "" {
		writeField(w, styles, "Public key", result.PublicKey)
	}
}

// WriteVerifyResult renders a completed verification. Validity is shown with
// icon, color, and text so the outcome survives a monochrome terminal.
func WriteVerifyResult(w io.Writer, result domain.VerifyResult) {
	styles := NewOutputStyles()

	if result.IsValid {
		_, _ = fmt.Fprintln(w, styles.Success.Render("✓ signature valid"))
	} else {
		_, _ = fmt.Fprintln(w, styles.Error.Render("✗ signature invalid"))
	}

	writeField(w, styles, "Digest", result.Fingerprint.DigestAlgorithm)
	writeField(w, styles, "Fingerprint", result.Fingerprint.EncodedValue)
	if result.CurveName != "" {
		writeField(w, styles, "Curve", result.CurveName)
	}
	if result.BitSize > 0 {
		writeField(w, styles, "Bit size", strconv.Itoa(result.BitSize))
	}
	if result.VerificationID != "" {
		writeField(w, styles, "Verification ID", result.VerificationID)
	}
	if !result.VerificationTime.IsZero() {
		writeField(w, styles, "Verified at", result.VerificationTime.Format(time.RFC3339))
	}
}

func writeField(w io.Writer, styles *OutputStyles, label, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Label.Render(label+":"), value)
}
