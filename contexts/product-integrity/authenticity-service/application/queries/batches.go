package queries

import (
	"context"
	"log/slog"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/domain/services"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

const moduleName = "product-integrity/authenticity-service"

type GetBatchUseCase struct {
	Registry ports.RegistryReader
	Logger   *slog.Logger
}

func (uc GetBatchUseCase) Execute(ctx context.Context, batchID uint64) (entities.ProductBatch, error) {
	if batchID == 0 {
		return entities.ProductBatch{}, domainerrors.ErrInvalidBatchID
	}
	batch, exists, err := uc.Registry.GetBatch(ctx, batchID)
	if err != nil {
		return entities.ProductBatch{}, err
	}
	if !exists {
		return entities.ProductBatch{}, domainerrors.ErrBatchNotFound
	}
	return batch, nil
}

type GetBatchesBulkUseCase struct {
	Registry ports.RegistryReader
	Logger   *slog.Logger
}

// Execute returns one view per requested id, in request order. Unknown ids
// (including zero) yield Exists=false instead of failing the call.
func (uc GetBatchesBulkUseCase) Execute(ctx context.Context, batchIDs []uint64) ([]entities.BatchView, error) {
	logger := application.ResolveLogger(uc.Logger)
	views := make([]entities.BatchView, len(batchIDs))
	missing := 0
	for i, batchID := range batchIDs {
		if batchID == 0 {
			missing++
			continue
		}
		batch, exists, err := uc.Registry.GetBatch(ctx, batchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			missing++
			continue
		}
		views[i] = entities.BatchView{Batch: batch, Exists: true}
	}
	logger.Debug("batches bulk fetched",
		"event", "authenticity_batches_bulk_fetched",
		"module", moduleName,
		"layer", "application",
		"requested", len(batchIDs),
		"missing", missing,
	)
	return views, nil
}

type RenderLabelQuery struct {
	BatchID     uint64
	Fingerprint entities.Fingerprint
}

// RenderLabelUseCase produces the scannable label for a registered unit. Labels
// are only issued for pairs that verify would accept.
type RenderLabelUseCase struct {
	Registry ports.RegistryReader
	Renderer ports.LabelRenderer
	Logger   *slog.Logger
}

func (uc RenderLabelUseCase) Execute(ctx context.Context, query RenderLabelQuery) ([]byte, error) {
	logger := application.ResolveLogger(uc.Logger)
	check := services.ClaimCheck{ClaimedBatchID: query.BatchID}
	if query.BatchID != 0 {
		var err error
		if _, check.BatchExists, err = uc.Registry.GetBatch(ctx, query.BatchID); err != nil {
			return nil, err
		}
		if check.MemberOf, check.HasMembership, err = uc.Registry.BatchOf(ctx, query.Fingerprint); err != nil {
			return nil, err
		}
	}
	if err := services.EvaluateClaim(check); err != nil {
		return nil, err
	}

	image, err := uc.Renderer.Render(query.Fingerprint, query.BatchID)
	if err != nil {
		logger.Error("label render failed",
			"event", "authenticity_label_render_failed",
			"module", moduleName,
			"layer", "application",
			"batch_id", query.BatchID,
			"fingerprint", query.Fingerprint.Hex(),
			"error", err.Error(),
		)
		return nil, err
	}
	return image, nil
}
