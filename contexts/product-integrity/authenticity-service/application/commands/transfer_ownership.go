package commands

import (
	"context"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type TransferOwnershipCommand struct {
	Caller   entities.Address
	NewOwner entities.Address
}

type TransferOwnershipResult struct {
	PreviousOwner entities.Address
	NewOwner      entities.Address
}

type TransferOwnershipUseCase struct {
	Runtime
}

// Execute hands ownership over. The outgoing owner loses manufacturer rights in
// the same call; re-authorize it separately if it must keep registering.
func (u TransferOwnershipUseCase) Execute(
	ctx context.Context,
	cmd TransferOwnershipCommand,
) (TransferOwnershipResult, error) {
	logger := u.logger()
	var previous entities.Address

	err := u.execute(ctx, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
		if err := requireAccess(ctx, tx, cmd.Caller, application.PrivilegeOwner); err != nil {
			return nil, err
		}
		owner, err := tx.Owner(ctx)
		if err != nil {
			return nil, err
		}
		if err := services.ValidateOwnershipTransfer(owner, cmd.NewOwner); err != nil {
			return nil, err
		}

		if err := tx.SetAuthorization(ctx, owner, false); err != nil {
			return nil, err
		}
		if err := tx.SetAuthorization(ctx, cmd.NewOwner, true); err != nil {
			return nil, err
		}
		if err := tx.SetOwner(ctx, cmd.NewOwner); err != nil {
			return nil, err
		}
		previous = owner

		payloads := []entities.EventPayload{
			entities.AuthorizationChanged{Address: owner, Authorized: false},
			entities.AuthorizationChanged{Address: cmd.NewOwner, Authorized: true},
			entities.OwnershipTransferred{PreviousOwner: owner, NewOwner: cmd.NewOwner},
		}
		events := make([]entities.Event, 0, len(payloads))
		for _, payload := range payloads {
			event, err := u.newEvent(ctx, now, payload)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
		return events, nil
	})
	if err != nil {
		logger.Warn("transfer ownership rejected",
			"event", "authenticity_transfer_ownership_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.Hex(),
			"new_owner", cmd.NewOwner.Hex(),
			"error", err.Error(),
		)
		return TransferOwnershipResult{}, err
	}

	logger.Info("ownership transferred",
		"event", "authenticity_ownership_transferred",
		"module", moduleName,
		"layer", "application",
		"previous_owner", previous.Hex(),
		"new_owner", cmd.NewOwner.Hex(),
	)
	return TransferOwnershipResult{PreviousOwner: previous, NewOwner: cmd.NewOwner}, nil
}
