package services

import (
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

// RequireRunning passes only while the pause gate is clear.
func RequireRunning(paused bool) error {
	if paused {
		return domainerrors.ErrPaused
	}
	return nil
}

// RequireHalted passes only while the pause gate is set.
func RequireHalted(paused bool) error {
	if !paused {
		return domainerrors.ErrNotPaused
	}
	return nil
}

func ValidateAuthorizationTarget(address entities.Address) error {
	if address == entities.ZeroAddress {
		return domainerrors.ErrInvalidAddress
	}
	return nil
}

func ValidateOwnershipTransfer(current entities.Address, next entities.Address) error {
	if next == entities.ZeroAddress {
		return domainerrors.ErrInvalidAddress
	}
	if next == current {
		return domainerrors.ErrInvalidOwner
	}
	return nil
}
