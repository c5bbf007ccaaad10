package usecase

import (
	"testing"

	"realz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestReasonSentence(t *testing.T) {
	cases := map[domain.ReasonCode]string{
		domain.ReasonDeletedByOwner:   "This proof was deleted by its owner.",
		domain.ReasonProofNotFound:    "This proof ID doesn't exist.",
		domain.ReasonThumbUnavailable: "Thumbnail is unavailable right now.",
		domain.ReasonSignatureInvalid: "The proof signature didn't verify.",
		domain.ReasonKeyInactive:      "The signing key is no longer active.",
		"":                            "Realz can't confirm this proof right now.",
		"SOMETHING_NEW":               "Realz can't confirm this proof right now.",
	}
	for code, want := range cases {
		assert.Equal(t, want, ReasonSentence(code), string(code))
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "-", FormatTimestamp("", nil))
	assert.Equal(t, "Jan 01, 2024, 00:00 UTC", FormatTimestamp("2024-01-01T00:00:00Z", nil))
	assert.Equal(t, "Mar 10, 2024, 07:15 UTC", FormatTimestamp("2024-03-10T09:15:00.123+02:00", nil))
	assert.Equal(t, "yesterday", FormatTimestamp("yesterday", nil))
}
