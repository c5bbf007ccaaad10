package domain

// ProofID names a capture-time proof record. It is opaque; the only
// invariant is that it is non-empty.
type ProofID string

func (id ProofID) String() string {
	return string(id)
}

type ReasonCode string

const (
	ReasonProofNotFound    ReasonCode = "PROOF_NOT_FOUND"
	ReasonThumbUnavailable ReasonCode = "THUMB_UNAVAILABLE"
	ReasonSignatureInvalid ReasonCode = "SIGNATURE_INVALID"
	ReasonKeyInactive      ReasonCode = "KEY_INACTIVE"
	ReasonDeletedByOwner   ReasonCode = "DELETED_BY_OWNER"
)

// TrustVerified is the only trust value rendered as verified. Every other
// value, including an absent one, is treated as not verified.
const TrustVerified = "verified"
