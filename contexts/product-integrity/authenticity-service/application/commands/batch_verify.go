package commands

import (
	"context"
	"errors"
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type BatchVerifyCommand struct {
	Caller       entities.Address
	Fingerprints []entities.Fingerprint
	BatchIDs     []uint64
}

type BatchVerifyResult struct {
	Results []bool
}

type BatchVerifyUseCase struct {
	Runtime
}

// Execute verifies parallel (fingerprint, batch id) pairs. Each pair commits on
// its own: a pair with an invalid or mismatched claim yields false and leaves no
// record, and never undoes pairs processed before it.
func (u BatchVerifyUseCase) Execute(ctx context.Context, cmd BatchVerifyCommand) (BatchVerifyResult, error) {
	logger := u.logger()
	if len(cmd.Fingerprints) != len(cmd.BatchIDs) {
		return BatchVerifyResult{}, domainerrors.ErrLengthMismatch
	}

	guarded, release, err := u.enter(ctx)
	if err != nil {
		return BatchVerifyResult{}, err
	}
	defer release()

	paused, err := u.Store.Paused(guarded)
	if err != nil {
		return BatchVerifyResult{}, err
	}
	if err := services.RequireRunning(paused); err != nil {
		return BatchVerifyResult{}, err
	}

	results := make([]bool, len(cmd.Fingerprints))
	authenticCount := 0
	for i, fingerprint := range cmd.Fingerprints {
		batchID := cmd.BatchIDs[i]
		var record entities.VerificationRecord
		err := u.mutate(guarded, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
			var events []entities.Event
			var err error
			record, events, err = u.verifyEntry(ctx, tx, now, cmd.Caller, fingerprint, batchID)
			return events, err
		})
		switch {
		case err == nil:
			results[i] = record.Authentic
			if record.Authentic {
				authenticCount++
			}
		case isSoftClaimFailure(err):
			logger.Debug("batch verify entry rejected",
				"event", "authenticity_batch_verify_entry_rejected",
				"module", moduleName,
				"layer", "application",
				"index", i,
				"fingerprint", fingerprint.Hex(),
				"batch_id", batchID,
				"error", err.Error(),
			)
		default:
			logger.Error("batch verify entry failed",
				"event", "authenticity_batch_verify_entry_failed",
				"module", moduleName,
				"layer", "application",
				"index", i,
				"fingerprint", fingerprint.Hex(),
				"error", err.Error(),
			)
			return BatchVerifyResult{Results: results}, err
		}
	}

	logger.Info("batch verify completed",
		"event", "authenticity_batch_verify_completed",
		"module", moduleName,
		"layer", "application",
		"entries", len(results),
		"authentic", authenticCount,
	)
	return BatchVerifyResult{Results: results}, nil
}

func isSoftClaimFailure(err error) bool {
	return errors.Is(err, domainerrors.ErrInvalidBatchID) ||
		errors.Is(err, domainerrors.ErrBatchNotFound) ||
		errors.Is(err, domainerrors.ErrSerialNotInBatch)
}
