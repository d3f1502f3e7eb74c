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

type UpdateMetadataCommand struct {
	Caller  entities.Address
	BatchID uint64
	Patch   entities.BatchMetadata
}

type UpdateMetadataResult struct {
	Batch entities.ProductBatch
}

type UpdateMetadataUseCase struct {
	Runtime
}

// Execute patches batch metadata. Empty patch fields leave the stored value in
// place, so a field can never be cleared through this path.
func (u UpdateMetadataUseCase) Execute(ctx context.Context, cmd UpdateMetadataCommand) (UpdateMetadataResult, error) {
	logger := u.logger()
	var updated entities.ProductBatch

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
		if cmd.BatchID == 0 {
			return nil, domainerrors.ErrInvalidBatchID
		}
		batch, exists, err := tx.GetBatch(ctx, cmd.BatchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domainerrors.ErrBatchNotFound
		}

		batch.Metadata = batch.Metadata.Merge(cmd.Patch)
		batch.UpdatedAt = now
		if err := tx.ReplaceMetadata(ctx, batch.BatchID, batch.Metadata, now); err != nil {
			return nil, err
		}
		updated = batch

		event, err := u.newEvent(ctx, now, entities.MetadataUpdated{
			BatchID:     batch.BatchID,
			IPFSRef:     batch.Metadata.IPFSRef,
			Description: batch.Metadata.Description,
			ImageRef:    batch.Metadata.ImageRef,
			UpdatedBy:   cmd.Caller,
		})
		if err != nil {
			return nil, err
		}
		return []entities.Event{event}, nil
	})
	if err != nil {
		logger.Warn("update metadata rejected",
			"event", "authenticity_update_metadata_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.Hex(),
			"batch_id", cmd.BatchID,
			"error", err.Error(),
		)
		return UpdateMetadataResult{}, err
	}

	logger.Info("batch metadata updated",
		"event", "authenticity_metadata_updated",
		"module", moduleName,
		"layer", "application",
		"batch_id", updated.BatchID,
	)
	return UpdateMetadataResult{Batch: updated}, nil
}
