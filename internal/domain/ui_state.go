package domain

import "fmt"

type UIState int

const (
	StateInvalidLink UIState = iota
	StateLoading
	StateVerified
	StateNotVerified
	StateDeleted
)

func (s UIState) String() string {
	switch s {
	case StateInvalidLink:
		return "invalid_link"
	case StateLoading:
		return "loading"
	case StateVerified:
		return "verified"
	case StateNotVerified:
		return "not_verified"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Badge is the short label shown on the colored badge and thumbnail pill.
func (s UIState) Badge() string {
	switch s {
	case StateInvalidLink:
		return "INVALID"
	case StateLoading:
		return "VERIFYING"
	case StateVerified:
		return "VERIFIED"
	case StateNotVerified:
		return "NOT VERIFIED"
	case StateDeleted:
		return "DELETED"
	default:
		return ""
	}
}

// Kind selects the badge color: good, bad, warn or info.
func (s UIState) Kind() string {
	switch s {
	case StateVerified:
		return "good"
	case StateNotVerified, StateInvalidLink:
		return "bad"
	case StateDeleted:
		return "warn"
	default:
		return "info"
	}
}

func (s UIState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *UIState) UnmarshalText(text []byte) error {
	for _, candidate := range []UIState{StateInvalidLink, StateLoading, StateVerified, StateNotVerified, StateDeleted} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown ui state %q", text)
}
