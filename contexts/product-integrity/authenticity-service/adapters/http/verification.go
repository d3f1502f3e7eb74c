package httpadapter

import (
	"context"

	"provenance/contexts/product-integrity/authenticity-service/adapters/labels"
	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/application/commands"
	"provenance/contexts/product-integrity/authenticity-service/application/queries"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	httptransport "provenance/contexts/product-integrity/authenticity-service/transport/http"
)

// VerifyHandler godoc
// @Summary Verify one product
// @Description Authentic only on the first accepted scan. Every accepted scan is recorded.
// @Tags authenticity-verification
// @Accept json
// @Produce json
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param request body httptransport.VerifyRequest true "Fingerprint and claimed batch"
// @Success 200 {object} httptransport.VerifyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/verifications [post]
func (h Handler) VerifyHandler(
	ctx context.Context,
	caller string,
	req httptransport.VerifyRequest,
) (httptransport.VerifyResponse, error) {
	fingerprint, err := entities.ParseFingerprint(req.Fingerprint)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	return h.verify(ctx, caller, fingerprint, req.BatchID)
}

// ScanHandler godoc
// @Summary Verify a scanned label
// @Description Same as verify, with the pair decoded from the label text.
// @Tags authenticity-verification
// @Accept json
// @Produce json
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param request body httptransport.ScanRequest true "Raw label text"
// @Success 200 {object} httptransport.VerifyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/verifications/scan [post]
func (h Handler) ScanHandler(
	ctx context.Context,
	caller string,
	req httptransport.ScanRequest,
) (httptransport.VerifyResponse, error) {
	fingerprint, batchID, err := labels.ParsePayload(req.Payload)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	return h.verify(ctx, caller, fingerprint, batchID)
}

func (h Handler) verify(
	ctx context.Context,
	caller string,
	fingerprint entities.Fingerprint,
	batchID uint64,
) (httptransport.VerifyResponse, error) {
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	result, err := h.VerifyProduct.Execute(ctx, commands.VerifyProductCommand{
		Caller:         callerAddress,
		Fingerprint:    fingerprint,
		ClaimedBatchID: batchID,
	})
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	return httptransport.VerifyResponse{
		Authentic: result.Authentic,
		Record:    mapRecord(result.Record),
	}, nil
}

// BatchVerifyHandler godoc
// @Summary Verify many products
// @Description Entries with an unknown batch or a mismatched fingerprint yield false without failing the call.
// @Tags authenticity-verification
// @Accept json
// @Produce json
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param request body httptransport.BatchVerifyRequest true "Parallel fingerprint and batch id arrays"
// @Success 200 {object} httptransport.BatchVerifyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/verifications/batch [post]
func (h Handler) BatchVerifyHandler(
	ctx context.Context,
	caller string,
	req httptransport.BatchVerifyRequest,
) (httptransport.BatchVerifyResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.BatchVerifyResponse{}, err
	}
	fingerprints, err := parseFingerprints(req.Fingerprints)
	if err != nil {
		return httptransport.BatchVerifyResponse{}, err
	}
	result, err := h.BatchVerify.Execute(ctx, commands.BatchVerifyCommand{
		Caller:       callerAddress,
		Fingerprints: fingerprints,
		BatchIDs:     req.BatchIDs,
	})
	if err != nil {
		logger.Warn("batch verify request failed",
			"event", "http_batch_verify_failed",
			"module", moduleName,
			"layer", "transport",
			"entries", len(req.Fingerprints),
			"error", err.Error(),
		)
		return httptransport.BatchVerifyResponse{}, err
	}
	return httptransport.BatchVerifyResponse{Results: result.Results}, nil
}

// FingerprintStatusHandler godoc
// @Summary Fingerprint status
// @Description Verified flag plus the number of recorded scans.
// @Tags authenticity-verification
// @Produce json
// @Param fingerprint path string true "Fingerprint hex"
// @Success 200 {object} httptransport.FingerprintStatusResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/fingerprints/{fingerprint} [get]
func (h Handler) FingerprintStatusHandler(ctx context.Context, fingerprint string) (httptransport.FingerprintStatusResponse, error) {
	parsed, err := entities.ParseFingerprint(fingerprint)
	if err != nil {
		return httptransport.FingerprintStatusResponse{}, err
	}
	status, err := h.FingerprintStatus.Execute(ctx, parsed)
	if err != nil {
		return httptransport.FingerprintStatusResponse{}, err
	}
	return httptransport.FingerprintStatusResponse{
		Fingerprint:       status.Fingerprint.Hex(),
		Verified:          status.Verified,
		VerificationCount: status.VerificationCount,
	}, nil
}

// HistoryHandler godoc
// @Summary Verification history
// @Description Records in insertion order.
// @Tags authenticity-verification
// @Produce json
// @Param fingerprint path string true "Fingerprint hex"
// @Param offset query int false "Records to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.HistoryResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/fingerprints/{fingerprint}/history [get]
func (h Handler) HistoryHandler(
	ctx context.Context,
	fingerprint string,
	req httptransport.HistoryRequest,
) (httptransport.HistoryResponse, error) {
	parsed, err := entities.ParseFingerprint(fingerprint)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	result, err := h.History.Execute(ctx, queries.VerificationHistoryQuery{
		Fingerprint: parsed,
		Page:        entities.HistoryPage{Offset: req.Offset, Limit: req.Limit},
	})
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	return mapHistory(result), nil
}

// HistoryBulkHandler godoc
// @Summary Verification history for many fingerprints
// @Tags authenticity-verification
// @Accept json
// @Produce json
// @Param request body httptransport.HistoryBulkRequest true "Fingerprints and page"
// @Success 200 {object} httptransport.HistoryBulkResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/fingerprints/history [post]
func (h Handler) HistoryBulkHandler(
	ctx context.Context,
	req httptransport.HistoryBulkRequest,
) (httptransport.HistoryBulkResponse, error) {
	fingerprints, err := parseFingerprints(req.Fingerprints)
	if err != nil {
		return httptransport.HistoryBulkResponse{}, err
	}
	results, err := h.HistoryBulk.Execute(ctx, fingerprints, entities.HistoryPage{Offset: req.Offset, Limit: req.Limit})
	if err != nil {
		return httptransport.HistoryBulkResponse{}, err
	}
	items := make([]httptransport.HistoryResponse, 0, len(results))
	for _, result := range results {
		items = append(items, mapHistory(result))
	}
	return httptransport.HistoryBulkResponse{Items: items}, nil
}

func mapHistory(result queries.VerificationHistoryResult) httptransport.HistoryResponse {
	items := make([]httptransport.VerificationRecordDTO, 0, len(result.Records))
	for _, record := range result.Records {
		items = append(items, mapRecord(record))
	}
	return httptransport.HistoryResponse{
		Fingerprint: result.Fingerprint.Hex(),
		Total:       result.Total,
		Items:       items,
	}
}

func mapRecord(record entities.VerificationRecord) httptransport.VerificationRecordDTO {
	return httptransport.VerificationRecordDTO{
		RecordID:    record.RecordID,
		Fingerprint: record.Fingerprint.Hex(),
		BatchID:     record.BatchID,
		Caller:      record.Caller.Hex(),
		Authentic:   record.Authentic,
		Sequence:    record.Sequence,
		VerifiedAt:  record.VerifiedAt.UTC().Format(timeLayout),
	}
}
