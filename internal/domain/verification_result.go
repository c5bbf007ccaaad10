package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VerificationResult is the body returned by the remote verification
// endpoint. The shape is owned by that service, so every field is optional
// and a field with an unexpected JSON type is treated as absent.
type VerificationResult struct {
	Trust         string
	CapturedAtUTC string
	ReasonCode    ReasonCode
	RevokedAtUTC  string
	ThumbURL      string
	KeyID         string

	raw json.RawMessage
}

// FetchOutcome is what a single verification round trip produced. Status is
// 0 when no HTTP response was received. Body is nil when the response had no
// parsable JSON body.
type FetchOutcome struct {
	OK     bool
	Status int
	Body   *VerificationResult
}

// ParseVerificationResult decodes a response body. An empty body or a JSON
// null yields (nil, nil). Invalid JSON yields ErrVerificationUnavailable.
func ParseVerificationResult(body []byte) (*VerificationResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrVerificationUnavailable, err)
	}
	res := &VerificationResult{raw: append(json.RawMessage(nil), trimmed...)}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return res, nil
	}
	res.Trust = stringField(obj, "trust")
	res.CapturedAtUTC = stringField(obj, "captured_at_utc")
	res.ReasonCode = ReasonCode(stringField(obj, "reason_code"))
	res.RevokedAtUTC = stringField(obj, "revoked_at_utc")
	if thumb, ok := obj["thumb"].(map[string]any); ok {
		res.ThumbURL = stringField(thumb, "url")
	}
	if crypto, ok := obj["crypto"].(map[string]any); ok {
		res.KeyID = stringField(crypto, "key_id")
	}
	return res, nil
}

// Raw returns the exact body bytes as received.
func (r *VerificationResult) Raw() json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage(nil), r.raw...)
}

// PrettyRaw indents the received body without re-deriving it, so key order
// and values are exactly those the endpoint sent.
func (r *VerificationResult) PrettyRaw() string {
	if r == nil || len(r.raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
		return string(r.raw)
	}
	return buf.String()
}

func (r *VerificationResult) Deleted() bool {
	return r != nil && r.ReasonCode == ReasonDeletedByOwner
}

func (r *VerificationResult) Verified() bool {
	return r != nil && r.Trust == TrustVerified
}

func stringField(obj map[string]any, key string) string {
	v, ok := obj[key].(string)
	if !ok {
		return ""
	}
	return v
}
