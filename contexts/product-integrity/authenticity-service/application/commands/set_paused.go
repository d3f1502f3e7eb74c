package commands

import (
	"context"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type SetPausedCommand struct {
	Caller entities.Address
	Paused bool
}

type SetPausedResult struct {
	Paused bool
}

// SetPausedUseCase backs both pause and unpause. Each direction requires the
// opposite starting state.
type SetPausedUseCase struct {
	Runtime
}

func (u SetPausedUseCase) Execute(ctx context.Context, cmd SetPausedCommand) (SetPausedResult, error) {
	logger := u.logger()

	err := u.execute(ctx, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
		if err := requireAccess(ctx, tx, cmd.Caller, application.PrivilegeOwner); err != nil {
			return nil, err
		}
		paused, err := tx.Paused(ctx)
		if err != nil {
			return nil, err
		}
		if cmd.Paused {
			err = services.RequireRunning(paused)
		} else {
			err = services.RequireHalted(paused)
		}
		if err != nil {
			return nil, err
		}
		if err := tx.SetPaused(ctx, cmd.Paused); err != nil {
			return nil, err
		}
		event, err := u.newEvent(ctx, now, entities.PauseChanged{Paused: cmd.Paused, Caller: cmd.Caller})
		if err != nil {
			return nil, err
		}
		return []entities.Event{event}, nil
	})
	if err != nil {
		logger.Warn("pause change rejected",
			"event", "authenticity_pause_change_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.Hex(),
			"paused", cmd.Paused,
			"error", err.Error(),
		)
		return SetPausedResult{}, err
	}

	logger.Info("pause state changed",
		"event", "authenticity_pause_changed",
		"module", moduleName,
		"layer", "application",
		"paused", cmd.Paused,
	)
	return SetPausedResult{Paused: cmd.Paused}, nil
}
