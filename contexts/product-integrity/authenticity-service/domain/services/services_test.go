package services

import (
	"errors"
	"testing"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

func TestEvaluateClaim(t *testing.T) {
	cases := []struct {
		name  string
		check ClaimCheck
		want  error
	}{
		{"zero batch id", ClaimCheck{}, domainerrors.ErrInvalidBatchID},
		{"unknown batch", ClaimCheck{ClaimedBatchID: 3}, domainerrors.ErrBatchNotFound},
		{"no membership", ClaimCheck{ClaimedBatchID: 3, BatchExists: true}, domainerrors.ErrSerialNotInBatch},
		{"other batch", ClaimCheck{ClaimedBatchID: 3, BatchExists: true, MemberOf: 4, HasMembership: true}, domainerrors.ErrSerialNotInBatch},
		{"member", ClaimCheck{ClaimedBatchID: 3, BatchExists: true, MemberOf: 3, HasMembership: true}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := EvaluateClaim(tc.check); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecideAuthenticity(t *testing.T) {
	if !DecideAuthenticity(false) {
		t.Fatalf("expected first scan to be authentic")
	}
	if DecideAuthenticity(true) {
		t.Fatalf("expected repeat scan to be non-authentic")
	}
}

func TestPauseGatesShareErrorClass(t *testing.T) {
	if err := RequireRunning(true); !errors.Is(err, domainerrors.ErrPaused) || !errors.Is(err, domainerrors.ErrPauseGate) {
		t.Fatalf("expected paused gate error, got %v", err)
	}
	if err := RequireHalted(false); !errors.Is(err, domainerrors.ErrNotPaused) || !errors.Is(err, domainerrors.ErrPauseGate) {
		t.Fatalf("expected not-paused gate error, got %v", err)
	}
	if RequireRunning(false) != nil || RequireHalted(true) != nil {
		t.Fatalf("expected gates to pass")
	}
}

func TestValidateOwnershipTransfer(t *testing.T) {
	var current, next entities.Address
	current[19] = 1
	next[19] = 2

	if err := ValidateOwnershipTransfer(current, entities.ZeroAddress); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if err := ValidateOwnershipTransfer(current, current); !errors.Is(err, domainerrors.ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner, got %v", err)
	}
	if err := ValidateOwnershipTransfer(current, next); err != nil {
		t.Fatalf("expected transfer allowed, got %v", err)
	}
	if err := ValidateAuthorizationTarget(entities.ZeroAddress); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}
