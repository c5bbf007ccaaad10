package usecase

import (
	"context"
	"time"

	"realz/internal/domain"

	"go.uber.org/zap"
)

// RenderVerification resolves a proof from a page location, verifies it
// once, and renders the verdict onto a View.
type RenderVerification struct {
	Verifier Verifier
	Recorder OutcomeRecorder
	Logger   *zap.Logger
	// DisplayLocation is the zone timestamps are shown in. Nil means UTC.
	DisplayLocation *time.Location
}

func (uc *RenderVerification) Execute(ctx context.Context, loc Location, view View) domain.UIState {
	logger := uc.logger()

	id, err := ResolveProofID(loc)
	if err != nil {
		logger.Debug("no proof id in location", zap.String("path", loc.Path), zap.Error(err))
		renderInvalidLink(view)
		uc.record(domain.StateInvalidLink, 0)
		return domain.StateInvalidLink
	}

	view.SetProofID(id.String())
	view.SetBadge(domain.StateLoading)
	view.SetStatus(statusFor(domain.StateLoading, 0))

	var outcome domain.FetchOutcome
	if uc.Verifier != nil {
		outcome = uc.Verifier.Verify(ctx, id)
	}
	body := outcome.Body
	view.SetRawDump(body.PrettyRaw())

	state := Decide(outcome)
	switch state {
	case domain.StateDeleted:
		view.SetDetails(Details{
			Trust:      orDefault(trustOf(body), unknownTrust),
			CapturedAt: FormatTimestamp(body.RevokedAtUTC, uc.DisplayLocation),
			KeyID:      orDefault(keyIDOf(body), placeholder),
		})
		view.SetSubtitle(ReasonSentence(domain.ReasonDeletedByOwner))
	case domain.StateVerified:
		view.SetDetails(uc.details(body))
		view.SetSubtitle(SubtitleVerified)
	default:
		view.SetDetails(uc.details(body))
		view.SetSubtitle(ReasonSentence(reasonOf(body)))
	}
	view.SetBadge(state)
	view.SetStatus(statusFor(state, outcome.Status))
	view.SetThumbnail(thumbnailFor(body, state))

	if state != domain.StateVerified {
		logger.Debug("proof not verified",
			zap.String("proof_id", id.String()),
			zap.String("state", state.String()),
			zap.Int("status", outcome.Status),
			zap.String("reason_code", string(reasonOf(body))),
			zap.Error(unavailable(outcome)))
	}
	uc.record(state, outcome.Status)
	return state
}

// Decide picks the terminal state for a completed round trip. A deletion
// tombstone wins over any status or trust value; a failed call is never
// verified.
func Decide(outcome domain.FetchOutcome) domain.UIState {
	switch {
	case outcome.Body.Deleted():
		return domain.StateDeleted
	case !outcome.OK:
		return domain.StateNotVerified
	case outcome.Body.Verified():
		return domain.StateVerified
	default:
		return domain.StateNotVerified
	}
}

func renderInvalidLink(view View) {
	view.SetProofID(placeholder)
	view.SetBadge(domain.StateInvalidLink)
	view.SetStatus(statusFor(domain.StateInvalidLink, 0))
	view.SetSubtitle(SubtitleInvalidLink)
	view.SetDetails(Details{Trust: placeholder, CapturedAt: placeholder, KeyID: placeholder})
	view.SetThumbnail(Thumbnail{})
	view.SetRawDump("")
}

func (uc *RenderVerification) details(body *domain.VerificationResult) Details {
	captured := ""
	if body != nil {
		captured = body.CapturedAtUTC
	}
	return Details{
		Trust:      orDefault(trustOf(body), unknownTrust),
		CapturedAt: FormatTimestamp(captured, uc.DisplayLocation),
		KeyID:      orDefault(keyIDOf(body), placeholder),
	}
}

func thumbnailFor(body *domain.VerificationResult, state domain.UIState) Thumbnail {
	if body == nil || body.ThumbURL == "" {
		return Thumbnail{}
	}
	return Thumbnail{
		URL:         body.ThumbURL,
		Visible:     true,
		Loading:     true,
		Overlay:     state.Badge(),
		OverlayKind: state.Kind(),
	}
}

func unavailable(outcome domain.FetchOutcome) error {
	if outcome.OK && outcome.Body != nil {
		return nil
	}
	return domain.ErrVerificationUnavailable
}

func (uc *RenderVerification) record(state domain.UIState, status int) {
	if uc.Recorder != nil {
		uc.Recorder.Record(state, status)
	}
}

func (uc *RenderVerification) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}

func trustOf(body *domain.VerificationResult) string {
	if body == nil {
		return ""
	}
	return body.Trust
}

func keyIDOf(body *domain.VerificationResult) string {
	if body == nil {
		return ""
	}
	return body.KeyID
}

func reasonOf(body *domain.VerificationResult) domain.ReasonCode {
	if body == nil {
		return ""
	}
	return body.ReasonCode
}
