package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
)

// errorBody covers the message field spellings seen across backend versions.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CheckResponse validates an HTTP response status. For a non-2xx status it
// attempts to parse a JSON body for a human-readable message; if parsing
// fails the message is synthesized from the status code alone. The returned
// error is always an *errors.APIError, which unwraps to the error taxonomy
// sentinel for its status class.
//
// The response body is consumed for non-2xx statuses and left untouched
// otherwise.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)

	var body errorBody
	message := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Detail != "":
			message = body.Detail
		case body.Message != "":
			message = body.Message
		case body.Error != "":
			message = body.Error
		}
	}

	return errors.NewAPIError(resp.StatusCode, message, string(raw))
}

// modernVerifyEnvelope is the current verification success shape: a boolean
// named for the verification plus nested metadata.
type modernVerifyEnvelope struct {
	Verification     *bool             `json:"verification"`
	MetaData         *verifyMetaData   `json:"meta_data"`
	VerificationID   string            `json:"verification_id"`
	VerificationTime time.Time         `json:"verification_time"`
	Extra            map[string]string `json:"-"`
}

type verifyMetaData struct {
	Document  string `json:"document"`
	PublicKey string `json:"public_key"`
	CurveName string `json:"curve_name"`
	BitSize   int    `json:"bit_size"`
}

// legacyVerifyEnvelope is the older flat shape.
type legacyVerifyEnvelope struct {
	IsValid          *bool     `json:"is_valid"`
	DocumentHash     string    `json:"document_hash"`
	PublicKey        string    `json:"public_key"`
	CurveName        string    `json:"curve_name"`
	BitSize          int       `json:"bit_size"`
	VerificationID   string    `json:"verification_id"`
	VerificationTime time.Time `json:"verification_time"`
}

// normalizeVerifyEnvelope reconciles the two verification success envelopes
// into the canonical VerifyResult. The mapping is pure and exhaustive: the
// canonical (modern) boolean is preferred when present, else the legacy
// boolean is mapped; no other heuristics. A payload matching neither shape
// fails with ErrEnvelopeUnrecognized rather than guessing.
func normalizeVerifyEnvelope(raw json.RawMessage) (domain.VerifyResult, error) {
	var modern modernVerifyEnvelope
	if err := json.Unmarshal(raw, &modern); err == nil && modern.Verification != nil {
		result := domain.VerifyResult{
			IsValid:          *modern.Verification,
			VerificationID:   modern.VerificationID,
			VerificationTime: modern.VerificationTime,
			BitSize:          256,
		}
		if modern.MetaData != nil {
			result.Fingerprint.EncodedValue = modern.MetaData.Document
			result.PublicKey = modern.MetaData.PublicKey
			result.CurveName = modern.MetaData.CurveName
			if modern.MetaData.BitSize > 0 {
				result.BitSize = modern.MetaData.BitSize
			}
		}
		return result, nil
	}

	var legacy legacyVerifyEnvelope
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy.IsValid != nil {
		result := domain.VerifyResult{
			IsValid:          *legacy.IsValid,
			PublicKey:        legacy.PublicKey,
			CurveName:        legacy.CurveName,
			BitSize:          legacy.BitSize,
			VerificationID:   legacy.VerificationID,
			VerificationTime: legacy.VerificationTime,
		}
		result.Fingerprint.EncodedValue = legacy.DocumentHash
		if result.BitSize == 0 {
			result.BitSize = 256
		}
		return result, nil
	}

	return domain.VerifyResult{}, errors.Wrap(errors.ErrEnvelopeUnrecognized, "verification response")
}
