package services

import (
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

// ClaimCheck captures what the registry knows about a (fingerprint, batch id)
// claim at decision time.
type ClaimCheck struct {
	ClaimedBatchID uint64
	BatchExists    bool
	MemberOf       uint64
	HasMembership  bool
}

// EvaluateClaim rejects a claim unless the fingerprint is recorded under the
// claimed batch. Pairing a real fingerprint with another batch id fails here.
func EvaluateClaim(check ClaimCheck) error {
	if check.ClaimedBatchID == 0 {
		return domainerrors.ErrInvalidBatchID
	}
	if !check.BatchExists {
		return domainerrors.ErrBatchNotFound
	}
	if !check.HasMembership || check.MemberOf != check.ClaimedBatchID {
		return domainerrors.ErrSerialNotInBatch
	}
	return nil
}

// DecideAuthenticity is evaluated before the status write: only the first scan
// of a fingerprint is authentic.
func DecideAuthenticity(alreadyVerified bool) bool {
	return !alreadyVerified
}
