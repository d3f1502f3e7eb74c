package commands

import (
	"context"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type RegisterBatchCommand struct {
	Caller       entities.Address
	BatchID      uint64
	Name         string
	Brand        string
	Fingerprints []entities.Fingerprint
	Metadata     entities.BatchMetadata
}

type RegisterBatchResult struct {
	Batch entities.ProductBatch
}

type RegisterBatchUseCase struct {
	Runtime
}

// Execute runs registration in this order:
// 1) pause gate
// 2) manufacturer privilege
// 3) field validation and batch id uniqueness
// 4) batch row, serial memberships and registration event in one unit.
//
// A fingerprint already claimed by another batch is reassigned to this one.
func (u RegisterBatchUseCase) Execute(ctx context.Context, cmd RegisterBatchCommand) (RegisterBatchResult, error) {
	logger := u.logger()
	var created entities.ProductBatch

	err := u.execute(ctx, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
		paused, err := tx.Paused(ctx)
		if err != nil {
			return nil, err
		}
		if err := services.RequireRunning(paused); err != nil {
			return nil, err
		}
		if err := requireAccess(ctx, tx, cmd.Caller, application.PrivilegeManufacturer); err != nil {
			return nil, err
		}

		batch, err := entities.NewProductBatch(
			cmd.BatchID,
			cmd.Name,
			cmd.Brand,
			cmd.Fingerprints,
			cmd.Metadata,
			cmd.Caller,
			now,
		)
		if err != nil {
			return nil, err
		}
		if _, exists, err := tx.GetBatch(ctx, cmd.BatchID); err != nil {
			return nil, err
		} else if exists {
			return nil, domainerrors.ErrBatchExists
		}

		if err := tx.InsertBatch(ctx, batch); err != nil {
			return nil, err
		}
		for _, fingerprint := range cmd.Fingerprints {
			if err := tx.AssignSerial(ctx, fingerprint, batch.BatchID); err != nil {
				return nil, err
			}
		}
		created = batch

		event, err := u.newEvent(ctx, now, entities.BatchRegistered{
			BatchID:          batch.BatchID,
			Name:             batch.Name,
			Brand:            batch.Brand,
			FingerprintCount: len(cmd.Fingerprints),
			Registrant:       cmd.Caller,
		})
		if err != nil {
			return nil, err
		}
		return []entities.Event{event}, nil
	})
	if err != nil {
		logger.Warn("register batch rejected",
			"event", "authenticity_register_batch_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.Hex(),
			"batch_id", cmd.BatchID,
			"error", err.Error(),
		)
		return RegisterBatchResult{}, err
	}

	logger.Info("batch registered",
		"event", "authenticity_batch_registered",
		"module", moduleName,
		"layer", "application",
		"batch_id", created.BatchID,
		"brand", created.Brand,
		"fingerprint_count", len(cmd.Fingerprints),
	)
	return RegisterBatchResult{Batch: created}, nil
}
