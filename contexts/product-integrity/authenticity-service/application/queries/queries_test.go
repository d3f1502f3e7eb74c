package queries

import (
	"context"
	"errors"
	"testing"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

type fakeState struct {
	batches    map[uint64]entities.ProductBatch
	membership map[entities.Fingerprint]uint64
	history    map[entities.Fingerprint][]entities.VerificationRecord
	lastPage   entities.HistoryPage
	unobserved int
}

func (f *fakeState) GetBatch(_ context.Context, batchID uint64) (entities.ProductBatch, bool, error) {
	batch, ok := f.batches[batchID]
	return batch, ok, nil
}

func (f *fakeState) BatchOf(_ context.Context, fingerprint entities.Fingerprint) (uint64, bool, error) {
	batchID, ok := f.membership[fingerprint]
	return batchID, ok, nil
}

func (f *fakeState) IsVerified(_ context.Context, fingerprint entities.Fingerprint) (bool, error) {
	for _, record := range f.history[fingerprint] {
		if record.Authentic {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeState) History(_ context.Context, fingerprint entities.Fingerprint, page entities.HistoryPage) ([]entities.VerificationRecord, int, error) {
	f.lastPage = page
	records := f.history[fingerprint]
	start, end := page.Window(len(records))
	return records[start:end], len(records), nil
}

// RecordCount counts concurrent appends that History has not observed yet.
func (f *fakeState) RecordCount(_ context.Context, fingerprint entities.Fingerprint) (int, error) {
	return len(f.history[fingerprint]) + f.unobserved, nil
}

func (f *fakeState) Statistics(context.Context) (entities.Statistics, error) {
	return entities.Statistics{TotalProducts: uint64(len(f.batches))}, nil
}

type fakeRenderer struct {
	calls int
}

func (r *fakeRenderer) Render(entities.Fingerprint, uint64) ([]byte, error) {
	r.calls++
	return []byte("png"), nil
}

func newFakeState() *fakeState {
	h1 := entities.DeriveFingerprint(1, "h1")
	records := make([]entities.VerificationRecord, 0, 5)
	for i := 1; i <= 5; i++ {
		records = append(records, entities.VerificationRecord{Fingerprint: h1, BatchID: 1, Authentic: i == 1, Sequence: i})
	}
	return &fakeState{
		batches:    map[uint64]entities.ProductBatch{1: {BatchID: 1, Name: "Widget", Brand: "Acme"}},
		membership: map[entities.Fingerprint]uint64{h1: 1},
		history:    map[entities.Fingerprint][]entities.VerificationRecord{h1: records},
	}
}

func TestGetBatchErrors(t *testing.T) {
	uc := GetBatchUseCase{Registry: newFakeState()}
	if _, err := uc.Execute(context.Background(), 0); !errors.Is(err, domainerrors.ErrInvalidBatchID) {
		t.Fatalf("expected ErrInvalidBatchID, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), 2); !errors.Is(err, domainerrors.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	batch, err := uc.Execute(context.Background(), 1)
	if err != nil || batch.Name != "Widget" {
		t.Fatalf("unexpected batch %+v err=%v", batch, err)
	}
}

func TestGetBatchesBulkKeepsOrderAndMarksMissing(t *testing.T) {
	uc := GetBatchesBulkUseCase{Registry: newFakeState()}
	views, err := uc.Execute(context.Background(), []uint64{7, 1, 0})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if views[0].Exists || !views[1].Exists || views[2].Exists {
		t.Fatalf("unexpected existence flags: %+v", views)
	}
	if views[1].Batch.BatchID != 1 || views[0].Batch.BatchID != 0 {
		t.Fatalf("unexpected batches: %+v", views)
	}
}

func TestVerificationHistoryAppliesDefaultLimit(t *testing.T) {
	state := newFakeState()
	h1 := entities.DeriveFingerprint(1, "h1")
	uc := VerificationHistoryUseCase{Ledger: state, DefaultLimit: 2}

	result, err := uc.Execute(context.Background(), VerificationHistoryQuery{Fingerprint: h1})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if result.Total != 5 || len(result.Records) != 2 || state.lastPage.Limit != 2 {
		t.Fatalf("unexpected page: total=%d records=%d page=%+v", result.Total, len(result.Records), state.lastPage)
	}

	result, err = uc.Execute(context.Background(), VerificationHistoryQuery{
		Fingerprint: h1,
		Page:        entities.HistoryPage{Offset: 3, Limit: 10},
	})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(result.Records) != 2 || result.Records[0].Sequence != 4 {
		t.Fatalf("unexpected explicit page: %+v", result.Records)
	}

	unknown, err := uc.Execute(context.Background(), VerificationHistoryQuery{Fingerprint: entities.DeriveFingerprint(9, "x")})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if unknown.Records == nil || len(unknown.Records) != 0 || unknown.Total != 0 {
		t.Fatalf("expected empty non-nil history, got %+v", unknown)
	}
}

func TestVerificationHistoryTotalMatchesPageSnapshot(t *testing.T) {
	state := newFakeState()
	state.unobserved = 1
	h1 := entities.DeriveFingerprint(1, "h1")

	result, err := VerificationHistoryUseCase{Ledger: state}.Execute(context.Background(), VerificationHistoryQuery{Fingerprint: h1})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if result.Total != len(result.Records) || result.Total != 5 {
		t.Fatalf("expected total from the page snapshot, got total=%d records=%d", result.Total, len(result.Records))
	}
}

func TestVerificationHistoryBulk(t *testing.T) {
	h1 := entities.DeriveFingerprint(1, "h1")
	other := entities.DeriveFingerprint(9, "x")
	uc := VerificationHistoryBulkUseCase{Ledger: newFakeState()}

	results, err := uc.Execute(context.Background(), []entities.Fingerprint{other, h1}, entities.HistoryPage{})
	if err != nil {
		t.Fatalf("bulk history: %v", err)
	}
	if len(results) != 2 || results[0].Total != 0 || results[1].Total != 5 || results[1].Fingerprint != h1 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestFingerprintStatus(t *testing.T) {
	h1 := entities.DeriveFingerprint(1, "h1")
	status, err := FingerprintStatusUseCase{Ledger: newFakeState()}.Execute(context.Background(), h1)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Verified || status.VerificationCount != 5 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestRenderLabelRequiresAcceptedClaim(t *testing.T) {
	state := newFakeState()
	renderer := &fakeRenderer{}
	uc := RenderLabelUseCase{Registry: state, Renderer: renderer}
	h1 := entities.DeriveFingerprint(1, "h1")

	if _, err := uc.Execute(context.Background(), RenderLabelQuery{BatchID: 1, Fingerprint: entities.DeriveFingerprint(1, "forged")}); !errors.Is(err, domainerrors.ErrSerialNotInBatch) {
		t.Fatalf("expected ErrSerialNotInBatch, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), RenderLabelQuery{BatchID: 2, Fingerprint: h1}); !errors.Is(err, domainerrors.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("expected renderer untouched for rejected claims")
	}
	image, err := uc.Execute(context.Background(), RenderLabelQuery{BatchID: 1, Fingerprint: h1})
	if err != nil || string(image) != "png" {
		t.Fatalf("unexpected render result %q err=%v", image, err)
	}
}
