package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerificationResultRecognizedFields(t *testing.T) {
	res, err := ParseVerificationResult([]byte(`{
		"trust": "verified",
		"captured_at_utc": "2024-01-01T00:00:00Z",
		"reason_code": "KEY_INACTIVE",
		"revoked_at_utc": "2024-05-01T00:00:00Z",
		"thumb": {"url": "https://x/y.jpg"},
		"crypto": {"key_id": "key-7"},
		"extra": [1, 2, 3]
	}`))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "verified", res.Trust)
	assert.Equal(t, "2024-01-01T00:00:00Z", res.CapturedAtUTC)
	assert.Equal(t, ReasonKeyInactive, res.ReasonCode)
	assert.Equal(t, "2024-05-01T00:00:00Z", res.RevokedAtUTC)
	assert.Equal(t, "https://x/y.jpg", res.ThumbURL)
	assert.Equal(t, "key-7", res.KeyID)
	assert.True(t, res.Verified())
	assert.False(t, res.Deleted())
}

func TestParseVerificationResultWrongTypesAreAbsent(t *testing.T) {
	res, err := ParseVerificationResult([]byte(`{"trust":true,"thumb":"https://x","crypto":{"key_id":5},"reason_code":null}`))
	require.NoError(t, err)
	assert.Empty(t, res.Trust)
	assert.Empty(t, res.ThumbURL)
	assert.Empty(t, res.KeyID)
	assert.Empty(t, res.ReasonCode)
}

func TestParseVerificationResultEmptyAndNull(t *testing.T) {
	for _, body := range []string{"", "   ", "null", " null\n"} {
		res, err := ParseVerificationResult([]byte(body))
		assert.NoError(t, err)
		assert.Nil(t, res)
	}
}

func TestParseVerificationResultInvalidJSON(t *testing.T) {
	res, err := ParseVerificationResult([]byte(`{"trust":`))
	assert.ErrorIs(t, err, ErrVerificationUnavailable)
	assert.Nil(t, res)
}

func TestParseVerificationResultNonObjectKeepsRaw(t *testing.T) {
	res, err := ParseVerificationResult([]byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Empty(t, res.Trust)
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]", res.PrettyRaw())
}

func TestNilResultAccessors(t *testing.T) {
	var res *VerificationResult
	assert.Empty(t, res.PrettyRaw())
	assert.Nil(t, res.Raw())
	assert.False(t, res.Deleted())
	assert.False(t, res.Verified())
}

func TestUIStateLabels(t *testing.T) {
	assert.Equal(t, "INVALID", StateInvalidLink.Badge())
	assert.Equal(t, "VERIFIED", StateVerified.Badge())
	assert.Equal(t, "NOT VERIFIED", StateNotVerified.Badge())
	assert.Equal(t, "DELETED", StateDeleted.Badge())
	assert.Equal(t, "good", StateVerified.Kind())
	assert.Equal(t, "bad", StateNotVerified.Kind())
	text, err := StateDeleted.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "deleted", string(text))
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "realz:client:10.0.0.1:route:page", RateLimitKey("page", "10.0.0.1"))
	assert.Equal(t, "realz:client:unknown:route:page", RateLimitKey("page", ""))
}

func TestUIStateTextRoundTrip(t *testing.T) {
	var s UIState
	require.NoError(t, s.UnmarshalText([]byte("not_verified")))
	assert.Equal(t, StateNotVerified, s)
	assert.Error(t, s.UnmarshalText([]byte("maybe")))
}
