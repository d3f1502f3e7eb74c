package application

import (
	"context"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type Privilege string

const (
	PrivilegeOwner        Privilege = "owner"
	PrivilegeManufacturer Privilege = "manufacturer"
)

// AccessDecision is the typed outcome of a privilege check. Reason is nil when
// Allowed is true.
type AccessDecision struct {
	Caller    entities.Address
	Privilege Privilege
	Allowed   bool
	Reason    error
}

func (d AccessDecision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// CheckAccess is consulted at the top of every privileged operation.
func CheckAccess(
	ctx context.Context,
	reader ports.AuthorizationReader,
	caller entities.Address,
	privilege Privilege,
) (AccessDecision, error) {
	decision := AccessDecision{Caller: caller, Privilege: privilege}
	switch privilege {
	case PrivilegeOwner:
		owner, err := reader.Owner(ctx)
		if err != nil {
			return decision, err
		}
		decision.Allowed = caller != entities.ZeroAddress && caller == owner
		if !decision.Allowed {
			decision.Reason = domainerrors.ErrNotOwner
		}
	case PrivilegeManufacturer:
		authorized, err := reader.IsAuthorized(ctx, caller)
		if err != nil {
			return decision, err
		}
		decision.Allowed = caller != entities.ZeroAddress && authorized
		if !decision.Allowed {
			decision.Reason = domainerrors.ErrNotAuthorized
		}
	default:
		decision.Reason = domainerrors.ErrNotAuthorized
	}
	return decision, nil
}
