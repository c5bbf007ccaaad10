package usecase

import (
	"context"

	"realz/internal/domain"
)

// Verifier performs the single round trip to the verification endpoint. It
// never fails: every failure is folded into the returned outcome.
type Verifier interface {
	Verify(ctx context.Context, id domain.ProofID) domain.FetchOutcome
}

// View is the display surface a verification is rendered onto.
type View interface {
	SetProofID(id string)
	SetBadge(state domain.UIState)
	SetStatus(status Status)
	SetSubtitle(text string)
	SetDetails(details Details)
	SetThumbnail(thumb Thumbnail)
	SetRawDump(raw string)
}

type OutcomeRecorder interface {
	Record(state domain.UIState, httpStatus int)
}

type Status struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	Hint  string `json:"hint,omitempty"`
}

type Details struct {
	Trust      string `json:"trust"`
	CapturedAt string `json:"captured_at"`
	KeyID      string `json:"key_id"`
}

// Thumbnail is hidden when Visible is false. Loading starts true for a
// visible thumbnail and is cleared by the display surface once the image
// loads or fails.
type Thumbnail struct {
	URL         string `json:"url,omitempty"`
	Visible     bool   `json:"visible"`
	Loading     bool   `json:"loading"`
	Overlay     string `json:"overlay,omitempty"`
	OverlayKind string `json:"overlay_kind,omitempty"`
}
