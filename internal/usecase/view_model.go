package usecase

import "realz/internal/domain"

// ViewModel is a View that keeps the last value set for every region. The
// HTTP page, the JSON API and the CLI all render from it.
type ViewModel struct {
	ProofID   string         `json:"proof_id"`
	State     domain.UIState `json:"state"`
	Badge     string         `json:"badge"`
	BadgeKind string         `json:"badge_kind"`
	Status    Status         `json:"status"`
	Subtitle  string         `json:"subtitle"`
	Details   Details        `json:"details"`
	Thumbnail Thumbnail      `json:"thumbnail"`
	RawDump   string         `json:"raw"`
}

func NewViewModel() *ViewModel {
	vm := &ViewModel{}
	vm.SetProofID(placeholder)
	vm.SetBadge(domain.StateLoading)
	vm.SetStatus(statusFor(domain.StateLoading, 0))
	vm.SetDetails(Details{Trust: placeholder, CapturedAt: placeholder, KeyID: placeholder})
	return vm
}

func (vm *ViewModel) SetProofID(id string) {
	vm.ProofID = orDefault(id, placeholder)
}

func (vm *ViewModel) SetBadge(state domain.UIState) {
	vm.State = state
	vm.Badge = state.Badge()
	vm.BadgeKind = state.Kind()
}

func (vm *ViewModel) SetStatus(status Status) {
	if status.Kind == "" {
		status.Kind = "info"
	}
	vm.Status = status
}

func (vm *ViewModel) SetSubtitle(text string) {
	vm.Subtitle = text
}

func (vm *ViewModel) SetDetails(details Details) {
	vm.Details = details
}

func (vm *ViewModel) SetThumbnail(thumb Thumbnail) {
	vm.Thumbnail = thumb
}

func (vm *ViewModel) SetRawDump(raw string) {
	vm.RawDump = raw
}

var _ View = (*ViewModel)(nil)
