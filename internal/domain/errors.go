package domain

import "errors"

var (
	// ErrMalformedLink means no proof identifier could be resolved from the
	// page location. Terminal; no network call is made.
	ErrMalformedLink = errors.New("malformed verify link")
	// ErrVerificationUnavailable covers network failure, non-2xx status and
	// unparsable bodies from the verification endpoint.
	ErrVerificationUnavailable = errors.New("verification unavailable")
	ErrInvalidConfig           = errors.New("invalid config")
	ErrNotFound                = errors.New("not found")
)
