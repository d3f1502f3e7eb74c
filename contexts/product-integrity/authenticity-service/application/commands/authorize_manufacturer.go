package commands

import (
	"context"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type AuthorizeManufacturerCommand struct {
	Caller       entities.Address
	Manufacturer entities.Address
	Authorized   bool
}

type AuthorizeManufacturerResult struct {
	Manufacturer entities.Address
	Authorized   bool
}

type AuthorizeManufacturerUseCase struct {
	Runtime
}

// Execute flips the manufacturer flag. Re-granting or re-revoking is a no-op on
// state but still emits the authorization-changed event.
func (u AuthorizeManufacturerUseCase) Execute(
	ctx context.Context,
	cmd AuthorizeManufacturerCommand,
) (AuthorizeManufacturerResult, error) {
	logger := u.logger()

	err := u.execute(ctx, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
		if err := requireAccess(ctx, tx, cmd.Caller, application.PrivilegeOwner); err != nil {
			return nil, err
		}
		if err := services.ValidateAuthorizationTarget(cmd.Manufacturer); err != nil {
			return nil, err
		}
		if err := tx.SetAuthorization(ctx, cmd.Manufacturer, cmd.Authorized); err != nil {
			return nil, err
		}
		event, err := u.newEvent(ctx, now, entities.AuthorizationChanged{
			Address:    cmd.Manufacturer,
			Authorized: cmd.Authorized,
		})
		if err != nil {
			return nil, err
		}
		return []entities.Event{event}, nil
	})
	if err != nil {
		logger.Warn("authorize manufacturer rejected",
			"event", "authenticity_authorize_manufacturer_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.Hex(),
			"manufacturer", cmd.Manufacturer.Hex(),
			"error", err.Error(),
		)
		return AuthorizeManufacturerResult{}, err
	}

	logger.Info("manufacturer authorization changed",
		"event", "authenticity_authorization_changed",
		"module", moduleName,
		"layer", "application",
		"manufacturer", cmd.Manufacturer.Hex(),
		"authorized", cmd.Authorized,
	)
	return AuthorizeManufacturerResult{
		Manufacturer: cmd.Manufacturer,
		Authorized:   cmd.Authorized,
	}, nil
}
