// Package remote is the HTTP transport to the remote cryptographic service.
// It submits sign and verify requests and normalizes the service's
// heterogeneous response envelopes into the canonical domain model.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
)

// Doer is the minimal HTTP client surface used by sigil's remote clients.
// *http.Client satisfies it; tests substitute fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the remote cryptographic service.
type Client struct {
	httpClient Doer
	baseURL    string
	token      string
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the cryptographic service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: constants.DefaultRequestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignRequest is the payload submitted for signing. Document carries the
// decimal fingerprint string, never raw document bytes.
type SignRequest struct {
	Document   string `json:"document"`
	PrivateKey string `json:"private_key"`
	CurveName  string `json:"curve_name"`
}

// VerifyRequest is the payload submitted for verification.
type VerifyRequest struct {
	Document      string `json:"document"`
	Signature     string `json:"signature"`
	PublicKey     string `json:"public_key"`
	AlgorithmName string `json:"algorithm_name"`
	CurveName     string `json:"curve_name"`
}

// signResponse is the signing service's success envelope.
type signResponse struct {
	Signature     string    `json:"signature"`
	DocumentHash  string    `json:"document_hash"`
	SigningID     string    `json:"signing_id"`
	SigningTime   time.Time `json:"signing_time"`
	PublicKey     string    `json:"public_key"`
	AlgorithmName string    `json:"algorithm_name"`
	CurveName     string    `json:"curve_name"`
}

// Sign submits a signing request. The request's private key is serialized
// into the request body and nowhere else; it is never logged and the request
// struct is not retained after the call returns. There is no automatic retry:
// a signing submission, once sent, runs to completion and its outcome is
// always surfaced.
func (c *Client) Sign(ctx context.Context, req SignRequest, fingerprint domain.DocumentFingerprint) (domain.SignResult, error) {
	var resp signResponse
	if err := c.post(ctx, "/signing", req, &resp); err != nil {
		return domain.SignResult{}, err
	}

	result := domain.SignResult{
		Signature:     resp.Signature,
		Fingerprint:   fingerprint,
		SigningID:     resp.SigningID,
		SigningTime:   resp.SigningTime,
		PublicKey:     resp.PublicKey,
		CurveName:     firstNonEmpty(resp.CurveName, req.CurveName),
		AlgorithmName: resp.AlgorithmName,
	}
	if resp.DocumentHash != "" {
		result.Fingerprint.EncodedValue = resp.DocumentHash
		result.Fingerprint.DigestAlgorithm = fingerprint.DigestAlgorithm
	}
	return result, nil
}

// Verify submits a verification request and reconciles the service's two
// historical success envelopes into one VerifyResult. Like Sign, it never
// retries and never discards a completed submission.
func (c *Client) Verify(ctx context.Context, req VerifyRequest, fingerprint domain.DocumentFingerprint) (domain.VerifyResult, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/verification", req, &raw); err != nil {
		return domain.VerifyResult{}, err
	}

	result, err := normalizeVerifyEnvelope(raw)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	result.Fingerprint.DigestAlgorithm = fingerprint.DigestAlgorithm
	if result.Fingerprint.EncodedValue == "" {
		result.Fingerprint.EncodedValue = fingerprint.EncodedValue
	}
	if result.PublicKey == "" {
		result.PublicKey = req.PublicKey
	}
	if result.CurveName == "" {
		result.CurveName = req.CurveName
	}
	return result, nil
}

// post sends a JSON request and decodes the 2xx response body into out.
// Non-2xx responses and transport failures come back as *errors.APIError.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling request")
	}

	requestID := uuid.NewString()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug().
		Str("path", path).
		Str("request_id", requestID).
		Msg("submitting request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckResponse(resp); err != nil {
		c.logger.Debug().
			Err(err).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return err
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrEnvelopeUnrecognized, err.Error())
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
