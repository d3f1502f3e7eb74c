package httpadapter

import (
	"context"

	"provenance/contexts/product-integrity/authenticity-service/application/commands"
	"provenance/contexts/product-integrity/authenticity-service/application/queries"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	httptransport "provenance/contexts/product-integrity/authenticity-service/transport/http"
)

// RegisterBatchHandler godoc
// @Summary Register a product batch
// @Description Authorized manufacturers only. Every fingerprint is bound to the new batch id.
// @Tags authenticity-registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param request body httptransport.RegisterBatchRequest true "Batch payload"
// @Success 201 {object} httptransport.BatchResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/batches [post]
func (h Handler) RegisterBatchHandler(
	ctx context.Context,
	caller string,
	req httptransport.RegisterBatchRequest,
) (httptransport.BatchResponse, error) {
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	fingerprints, err := parseFingerprints(req.Fingerprints)
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	result, err := h.RegisterBatch.Execute(ctx, commands.RegisterBatchCommand{
		Caller:       callerAddress,
		BatchID:      req.BatchID,
		Name:         req.Name,
		Brand:        req.Brand,
		Fingerprints: fingerprints,
		Metadata: entities.BatchMetadata{
			IPFSRef:     req.Metadata.IPFSRef,
			Description: req.Metadata.Description,
			ImageRef:    req.Metadata.ImageRef,
		},
	})
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	return httptransport.BatchResponse{Item: mapBatch(result.Batch)}, nil
}

// UpdateMetadataHandler godoc
// @Summary Patch batch metadata
// @Description Authorized manufacturers only. Empty fields leave stored values unchanged.
// @Tags authenticity-registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param batch_id path int true "Batch id"
// @Param request body httptransport.UpdateMetadataRequest true "Metadata patch"
// @Success 200 {object} httptransport.BatchResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/batches/{batch_id}/metadata [patch]
func (h Handler) UpdateMetadataHandler(
	ctx context.Context,
	caller string,
	batchID uint64,
	req httptransport.UpdateMetadataRequest,
) (httptransport.BatchResponse, error) {
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	result, err := h.UpdateMetadata.Execute(ctx, commands.UpdateMetadataCommand{
		Caller:  callerAddress,
		BatchID: batchID,
		Patch: entities.BatchMetadata{
			IPFSRef:     req.IPFSRef,
			Description: req.Description,
			ImageRef:    req.ImageRef,
		},
	})
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	return httptransport.BatchResponse{Item: mapBatch(result.Batch)}, nil
}

// GetBatchHandler godoc
// @Summary Get a batch
// @Tags authenticity-registry
// @Produce json
// @Param batch_id path int true "Batch id"
// @Success 200 {object} httptransport.BatchResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/batches/{batch_id} [get]
func (h Handler) GetBatchHandler(ctx context.Context, batchID uint64) (httptransport.BatchResponse, error) {
	batch, err := h.GetBatch.Execute(ctx, batchID)
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	return httptransport.BatchResponse{Item: mapBatch(batch)}, nil
}

// GetBatchesBulkHandler godoc
// @Summary Get many batches
// @Description Items follow request order. Unknown ids come back with exists=false.
// @Tags authenticity-registry
// @Accept json
// @Produce json
// @Param request body httptransport.GetBatchesBulkRequest true "Batch ids"
// @Success 200 {object} httptransport.GetBatchesBulkResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/batches/bulk [post]
func (h Handler) GetBatchesBulkHandler(
	ctx context.Context,
	req httptransport.GetBatchesBulkRequest,
) (httptransport.GetBatchesBulkResponse, error) {
	views, err := h.GetBatchesBulk.Execute(ctx, req.BatchIDs)
	if err != nil {
		return httptransport.GetBatchesBulkResponse{}, err
	}
	items := make([]httptransport.BatchViewDTO, 0, len(views))
	for _, view := range views {
		item := httptransport.BatchViewDTO{Exists: view.Exists}
		if view.Exists {
			item.Item = mapBatch(view.Batch)
		}
		items = append(items, item)
	}
	return httptransport.GetBatchesBulkResponse{Items: items}, nil
}

// LabelHandler godoc
// @Summary Render a product label
// @Description PNG QR code carrying the (batch id, fingerprint) pair accepted by verify.
// @Tags authenticity-registry
// @Produce png
// @Param batch_id path int true "Batch id"
// @Param fingerprint path string true "Fingerprint hex"
// @Success 200 {file} binary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/batches/{batch_id}/labels/{fingerprint} [get]
func (h Handler) LabelHandler(ctx context.Context, batchID uint64, fingerprint string) ([]byte, error) {
	parsed, err := entities.ParseFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	return h.RenderLabel.Execute(ctx, queries.RenderLabelQuery{
		BatchID:     batchID,
		Fingerprint: parsed,
	})
}

func mapBatch(batch entities.ProductBatch) httptransport.BatchDTO {
	return httptransport.BatchDTO{
		BatchID: batch.BatchID,
		Name:    batch.Name,
		Brand:   batch.Brand,
		Metadata: httptransport.BatchMetadataDTO{
			IPFSRef:     batch.Metadata.IPFSRef,
			Description: batch.Metadata.Description,
			ImageRef:    batch.Metadata.ImageRef,
		},
		Registrant:        batch.Registrant.Hex(),
		SerialCount:       batch.SerialCount,
		VerificationCount: batch.VerificationCount,
		CreatedAt:         batch.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:         batch.UpdatedAt.UTC().Format(timeLayout),
	}
}

func mapAddresses(addresses []entities.Address) []string {
	items := make([]string, 0, len(addresses))
	for _, address := range addresses {
		items = append(items, address.Hex())
	}
	return items
}
