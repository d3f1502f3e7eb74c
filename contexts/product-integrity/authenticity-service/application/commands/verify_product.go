package commands

import (
	"context"
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type VerifyProductCommand struct {
	Caller         entities.Address
	Fingerprint    entities.Fingerprint
	ClaimedBatchID uint64
}

type VerifyProductResult struct {
	Authentic bool
	Record    entities.VerificationRecord
}

type VerifyProductUseCase struct {
	Runtime
}

// Execute returns true only on the first accepted scan of a fingerprint. Every
// accepted scan, authentic or not, appends one ledger record and one event.
func (u VerifyProductUseCase) Execute(ctx context.Context, cmd VerifyProductCommand) (VerifyProductResult, error) {
	logger := u.logger()
	var record entities.VerificationRecord

	err := u.execute(ctx, func(ctx context.Context, tx ports.StateTx, now time.Time) ([]entities.Event, error) {
		paused, err := tx.Paused(ctx)
		if err != nil {
			return nil, err
		}
		if err := services.RequireRunning(paused); err != nil {
			return nil, err
		}
		var events []entities.Event
		record, events, err = u.verifyEntry(ctx, tx, now, cmd.Caller, cmd.Fingerprint, cmd.ClaimedBatchID)
		return events, err
	})
	if err != nil {
		logger.Warn("verify product rejected",
			"event", "authenticity_verify_rejected",
			"module", moduleName,
			"layer", "application",
			"fingerprint", cmd.Fingerprint.Hex(),
			"batch_id", cmd.ClaimedBatchID,
			"error", err.Error(),
		)
		return VerifyProductResult{}, err
	}

	logger.Info("product verified",
		"event", "authenticity_product_verified",
		"module", moduleName,
		"layer", "application",
		"fingerprint", cmd.Fingerprint.Hex(),
		"batch_id", cmd.ClaimedBatchID,
		"authentic", record.Authentic,
	)
	return VerifyProductResult{Authentic: record.Authentic, Record: record}, nil
}

// verifyEntry applies the first-scan state transition for one claim:
// membership check, status read before write, counters on first scan only,
// then the ledger record and its event.
func (r Runtime) verifyEntry(
	ctx context.Context,
	tx ports.StateTx,
	now time.Time,
	caller entities.Address,
	fingerprint entities.Fingerprint,
	claimedBatchID uint64,
) (entities.VerificationRecord, []entities.Event, error) {
	check := services.ClaimCheck{ClaimedBatchID: claimedBatchID}
	if claimedBatchID != 0 {
		var err error
		if _, check.BatchExists, err = tx.GetBatch(ctx, claimedBatchID); err != nil {
			return entities.VerificationRecord{}, nil, err
		}
		if check.MemberOf, check.HasMembership, err = tx.BatchOf(ctx, fingerprint); err != nil {
			return entities.VerificationRecord{}, nil, err
		}
	}
	if err := services.EvaluateClaim(check); err != nil {
		return entities.VerificationRecord{}, nil, err
	}

	verified, err := tx.IsVerified(ctx, fingerprint)
	if err != nil {
		return entities.VerificationRecord{}, nil, err
	}
	authentic := services.DecideAuthenticity(verified)
	if authentic {
		if err := tx.MarkVerified(ctx, fingerprint); err != nil {
			return entities.VerificationRecord{}, nil, err
		}
		if err := tx.IncrementVerifications(ctx, claimedBatchID); err != nil {
			return entities.VerificationRecord{}, nil, err
		}
	}

	count, err := tx.RecordCount(ctx, fingerprint)
	if err != nil {
		return entities.VerificationRecord{}, nil, err
	}
	recordID, err := r.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.VerificationRecord{}, nil, err
	}
	record := entities.VerificationRecord{
		RecordID:    recordID,
		Fingerprint: fingerprint,
		BatchID:     claimedBatchID,
		Caller:      caller,
		Authentic:   authentic,
		Sequence:    count + 1,
		VerifiedAt:  now,
	}
	if err := tx.AppendRecord(ctx, record); err != nil {
		return entities.VerificationRecord{}, nil, err
	}

	event, err := r.newEvent(ctx, now, entities.ProductVerified{
		Fingerprint: fingerprint,
		BatchID:     claimedBatchID,
		Authentic:   authentic,
		Caller:      caller,
		Timestamp:   now,
	})
	if err != nil {
		return entities.VerificationRecord{}, nil, err
	}
	return record, []entities.Event{event}, nil
}
