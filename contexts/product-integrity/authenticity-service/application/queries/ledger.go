package queries

import (
	"context"
	"log/slog"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type FingerprintStatus struct {
	Fingerprint       entities.Fingerprint
	Verified          bool
	VerificationCount int
}

type IsVerifiedUseCase struct {
	Ledger ports.LedgerReader
	Logger *slog.Logger
}

func (uc IsVerifiedUseCase) Execute(ctx context.Context, fingerprint entities.Fingerprint) (bool, error) {
	return uc.Ledger.IsVerified(ctx, fingerprint)
}

// VerificationCountUseCase counts ledger records for a fingerprint, repeated
// scans included.
type VerificationCountUseCase struct {
	Ledger ports.LedgerReader
	Logger *slog.Logger
}

func (uc VerificationCountUseCase) Execute(ctx context.Context, fingerprint entities.Fingerprint) (int, error) {
	return uc.Ledger.RecordCount(ctx, fingerprint)
}

type FingerprintStatusUseCase struct {
	Ledger ports.LedgerReader
	Logger *slog.Logger
}

func (uc FingerprintStatusUseCase) Execute(ctx context.Context, fingerprint entities.Fingerprint) (FingerprintStatus, error) {
	verified, err := IsVerifiedUseCase{Ledger: uc.Ledger}.Execute(ctx, fingerprint)
	if err != nil {
		return FingerprintStatus{}, err
	}
	count, err := VerificationCountUseCase{Ledger: uc.Ledger}.Execute(ctx, fingerprint)
	if err != nil {
		return FingerprintStatus{}, err
	}
	return FingerprintStatus{
		Fingerprint:       fingerprint,
		Verified:          verified,
		VerificationCount: count,
	}, nil
}

type VerificationHistoryQuery struct {
	Fingerprint entities.Fingerprint
	Page        entities.HistoryPage
}

type VerificationHistoryResult struct {
	Fingerprint entities.Fingerprint
	Records     []entities.VerificationRecord
	Total       int
}

// VerificationHistoryUseCase reads a fingerprint's ledger in insertion order.
// DefaultLimit applies when the query carries no limit; zero leaves reads
// unbounded.
type VerificationHistoryUseCase struct {
	Ledger       ports.LedgerReader
	DefaultLimit int
	Logger       *slog.Logger
}

func (uc VerificationHistoryUseCase) Execute(ctx context.Context, query VerificationHistoryQuery) (VerificationHistoryResult, error) {
	page := query.Page
	if page.Limit <= 0 {
		page.Limit = uc.DefaultLimit
	}
	records, total, err := uc.Ledger.History(ctx, query.Fingerprint, page)
	if err != nil {
		return VerificationHistoryResult{}, err
	}
	if records == nil {
		records = []entities.VerificationRecord{}
	}
	return VerificationHistoryResult{
		Fingerprint: query.Fingerprint,
		Records:     records,
		Total:       total,
	}, nil
}

type VerificationHistoryBulkUseCase struct {
	Ledger       ports.LedgerReader
	DefaultLimit int
	Logger       *slog.Logger
}

// Execute returns one history per fingerprint, in request order. Each history
// is read with the same page.
func (uc VerificationHistoryBulkUseCase) Execute(
	ctx context.Context,
	fingerprints []entities.Fingerprint,
	page entities.HistoryPage,
) ([]VerificationHistoryResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	single := VerificationHistoryUseCase{Ledger: uc.Ledger, DefaultLimit: uc.DefaultLimit, Logger: uc.Logger}
	results := make([]VerificationHistoryResult, 0, len(fingerprints))
	for _, fingerprint := range fingerprints {
		result, err := single.Execute(ctx, VerificationHistoryQuery{Fingerprint: fingerprint, Page: page})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	logger.Debug("verification history bulk fetched",
		"event", "authenticity_history_bulk_fetched",
		"module", moduleName,
		"layer", "application",
		"requested", len(fingerprints),
	)
	return results, nil
}
