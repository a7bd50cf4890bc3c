package catalog

import (
	"encoding/json"

	"github.com/mrz1836/sigil/internal/domain"
)

// The catalog's response envelopes have varied across backend versions.
// Each shape gets a small recognizer that returns (payload, ok); decoding
// tries them in a fixed order and the first match wins. This keeps the
// parsing total and exhaustive instead of relying on ad hoc optional
// chaining.

// algorithmPayload is the wire form of an algorithm, tolerating numeric ids.
type algorithmPayload struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

func (p algorithmPayload) toDomain() domain.Algorithm {
	return domain.Algorithm{
		ID:          idString(p.ID),
		Name:        p.Name,
		Family:      domain.ParseFamily(p.Type),
		Description: p.Description,
		IsDefault:   p.IsDefault,
	}
}

// curvePayload is the wire form of a curve.
type curvePayload struct {
	ID          any            `json:"id"`
	Name        string         `json:"name"`
	AlgorithmID any            `json:"algorithm_id"`
	BitSize     int            `json:"bit_size"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Status      string         `json:"status"`
}

func (p curvePayload) toDomain(fallbackAlgorithmID string) domain.Curve {
	algorithmID := idString(p.AlgorithmID)
	if algorithmID == "" {
		algorithmID = fallbackAlgorithmID
	}
	status := domain.CurveStatus(p.Status)
	if p.Status == "" {
		status = domain.CurveEnabled
	}
	return domain.Curve{
		ID:          idString(p.ID),
		Name:        p.Name,
		AlgorithmID: algorithmID,
		BitSize:     p.BitSize,
		Description: p.Description,
		Parameters:  p.Parameters,
		Status:      status,
	}
}

// decodeAlgorithmsEnvelope tries the three algorithm list shapes in order:
// bare array, {items: [...]}, {algorithms: [...]}. The first shape yielding a
// non-empty list wins.
func decodeAlgorithmsEnvelope(body []byte) ([]domain.Algorithm, bool) {
	recognizers := []func([]byte) ([]algorithmPayload, bool){
		recognizeBareAlgorithmArray,
		recognizeKeyedAlgorithms("items"),
		recognizeKeyedAlgorithms("algorithms"),
	}
	for _, recognize := range recognizers {
		payloads, ok := recognize(body)
		if !ok || len(payloads) == 0 {
			continue
		}
		algorithms := make([]domain.Algorithm, 0, len(payloads))
		for _, p := range payloads {
			algorithms = append(algorithms, p.toDomain())
		}
		return algorithms, true
	}
	return nil, false
}

func recognizeBareAlgorithmArray(body []byte) ([]algorithmPayload, bool) {
	var payloads []algorithmPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, false
	}
	return payloads, true
}

func recognizeKeyedAlgorithms(key string) func([]byte) ([]algorithmPayload, bool) {
	return func(body []byte) ([]algorithmPayload, bool) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, false
		}
		raw, ok := envelope[key]
		if !ok {
			return nil, false
		}
		var payloads []algorithmPayload
		if err := json.Unmarshal(raw, &payloads); err != nil {
			return nil, false
		}
		return payloads, true
	}
}

// algorithmDetailPayload is the per-algorithm detail shape with nested curves.
type algorithmDetailPayload struct {
	ID     any            `json:"id"`
	Name   string         `json:"name"`
	Curves []curvePayload `json:"curves"`
}

// decodeNestedCurves extracts the curves nested under an algorithm detail
// response. A detail payload without a curves field does not match.
func decodeNestedCurves(body []byte, algorithmID string) ([]domain.Curve, bool) {
	var detail algorithmDetailPayload
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, false
	}
	if detail.Curves == nil {
		return nil, false
	}
	curves := make([]domain.Curve, 0, len(detail.Curves))
	for _, p := range detail.Curves {
		curves = append(curves, p.toDomain(algorithmID))
	}
	return curves, true
}

// decodeCurveList decodes the flat curve-list endpoint, which uses either a
// bare array or {items: [...]}.
func decodeCurveList(body []byte) ([]domain.Curve, bool) {
	var payloads []curvePayload
	if err := json.Unmarshal(body, &payloads); err == nil {
		return curvesToDomain(payloads), true
	}

	var envelope struct {
		Items []curvePayload `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return curvesToDomain(envelope.Items), true
	}
	return nil, false
}

func curvesToDomain(payloads []curvePayload) []domain.Curve {
	curves := make([]domain.Curve, 0, len(payloads))
	for _, p := range payloads {
		curves = append(curves, p.toDomain(""))
	}
	return curves
}
