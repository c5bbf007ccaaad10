package usecase

import (
	"strconv"
	"time"

	"realz/internal/domain"
)

const (
	SubtitleVerified    = "This image matches a cryptographic proof created at capture time."
	SubtitleInvalidLink = "This link doesn't point to a Realz proof."
	SubtitleFallback    = "Realz can't confirm this proof right now."

	placeholder  = "-"
	unknownTrust = "unknown"
)

var reasonSentences = map[domain.ReasonCode]string{
	domain.ReasonDeletedByOwner:   "This proof was deleted by its owner.",
	domain.ReasonProofNotFound:    "This proof ID doesn't exist.",
	domain.ReasonThumbUnavailable: "Thumbnail is unavailable right now.",
	domain.ReasonSignatureInvalid: "The proof signature didn't verify.",
	domain.ReasonKeyInactive:      "The signing key is no longer active.",
}

// ReasonSentence maps a reason code to the sentence shown under the badge.
// Absent and unrecognized codes share the generic fallback.
func ReasonSentence(code domain.ReasonCode) string {
	if s, ok := reasonSentences[code]; ok {
		return s
	}
	return SubtitleFallback
}

func statusFor(state domain.UIState, httpStatus int) Status {
	switch state {
	case domain.StateInvalidLink:
		return Status{Title: "Invalid verify link", Kind: state.Kind()}
	case domain.StateLoading:
		return Status{Title: "Verifying…", Kind: state.Kind()}
	case domain.StateVerified:
		return Status{Title: "✅ Realz-verified", Kind: state.Kind()}
	case domain.StateDeleted:
		return Status{Title: "🗑️ Deleted by owner", Kind: state.Kind()}
	default:
		return Status{Title: "⚠️ Could not verify", Kind: state.Kind(), Hint: httpHint(httpStatus)}
	}
}

func httpHint(status int) string {
	switch {
	case status == 0:
		return "network error"
	case status < 200 || status >= 300:
		return "HTTP " + strconv.Itoa(status)
	default:
		return ""
	}
}

const timestampLayout = "Jan 02, 2006, 15:04 MST"

// FormatTimestamp renders an ISO-8601 timestamp as a long date/time with the
// zone name in loc. Absent values become a dash; values that do not parse
// are shown as received.
func FormatTimestamp(value string, loc *time.Location) string {
	if value == "" {
		return placeholder
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(timestampLayout)
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
