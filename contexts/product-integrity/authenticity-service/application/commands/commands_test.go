package commands

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"provenance/contexts/product-integrity/authenticity-service/adapters/memory"
	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type harness struct {
	store    *memory.Store
	runtime  Runtime
	owner    entities.Address
	maker    entities.Address
	stranger entities.Address
}

func testAddress(b byte) entities.Address {
	var a entities.Address
	a[19] = b
	return a
}

func newHarness(t *testing.T, observers ...ports.EventObserver) harness {
	t.Helper()
	owner := testAddress(1)
	store := memory.NewStore(owner, slog.Default())
	h := harness{
		store: store,
		runtime: Runtime{
			Store:       store,
			Guard:       application.NewGuard(),
			Clock:       store,
			IDGenerator: store,
			Observers:   observers,
			Logger:      slog.Default(),
		},
		owner:    owner,
		maker:    testAddress(2),
		stranger: testAddress(3),
	}
	if _, err := (AuthorizeManufacturerUseCase{Runtime: h.runtime}).Execute(context.Background(), AuthorizeManufacturerCommand{
		Caller:       owner,
		Manufacturer: h.maker,
		Authorized:   true,
	}); err != nil {
		t.Fatalf("authorize manufacturer: %v", err)
	}
	return h
}

func (h harness) register(t *testing.T, batchID uint64, fingerprints ...entities.Fingerprint) {
	t.Helper()
	_, err := RegisterBatchUseCase{Runtime: h.runtime}.Execute(context.Background(), RegisterBatchCommand{
		Caller:       h.maker,
		BatchID:      batchID,
		Name:         "Widget",
		Brand:        "Acme",
		Fingerprints: fingerprints,
	})
	if err != nil {
		t.Fatalf("register batch %d: %v", batchID, err)
	}
}

func (h harness) verify(fingerprint entities.Fingerprint, batchID uint64) (bool, error) {
	result, err := VerifyProductUseCase{Runtime: h.runtime}.Execute(context.Background(), VerifyProductCommand{
		Caller:         h.stranger,
		Fingerprint:    fingerprint,
		ClaimedBatchID: batchID,
	})
	return result.Authentic, err
}

func fp(serial string) entities.Fingerprint {
	return entities.DeriveFingerprint(1, serial)
}

func TestRegisterAndVerifyScenario(t *testing.T) {
	h := newHarness(t)
	h1, h2, h3 := fp("h1"), fp("h2"), fp("h3")
	h.register(t, 1, h1, h2)

	for i, step := range []struct {
		fingerprint entities.Fingerprint
		want        bool
	}{{h1, true}, {h1, false}, {h2, true}} {
		got, err := h.verify(step.fingerprint, 1)
		if err != nil {
			t.Fatalf("verify step %d: %v", i, err)
		}
		if got != step.want {
			t.Fatalf("verify step %d: expected %v, got %v", i, step.want, got)
		}
	}

	stats, err := h.store.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalProducts != 1 || stats.TotalVerifications != 2 {
		t.Fatalf("expected totalProducts=1 totalVerifications=2, got %+v", stats)
	}
	batch, _, _ := h.store.GetBatch(context.Background(), 1)
	if batch.VerificationCount != 2 {
		t.Fatalf("expected batch verification count 2, got %d", batch.VerificationCount)
	}

	before, _ := h.store.RecordCount(context.Background(), h1)
	result, err := BatchVerifyUseCase{Runtime: h.runtime}.Execute(context.Background(), BatchVerifyCommand{
		Caller:       h.stranger,
		Fingerprints: []entities.Fingerprint{h1, h3},
		BatchIDs:     []uint64{1, 99},
	})
	if err != nil {
		t.Fatalf("batch verify: %v", err)
	}
	if len(result.Results) != 2 || result.Results[0] || result.Results[1] {
		t.Fatalf("expected [false false], got %v", result.Results)
	}
	after, _ := h.store.RecordCount(context.Background(), h1)
	if after != before+1 {
		t.Fatalf("expected h1 history to grow by one, got %d -> %d", before, after)
	}
	if count, _ := h.store.RecordCount(context.Background(), h3); count != 0 {
		t.Fatalf("expected no record for rejected entry, got %d", count)
	}
}

func TestBatchVerifyMixedEntries(t *testing.T) {
	h := newHarness(t)
	h1, h2 := fp("h1"), fp("h2")
	h.register(t, 1, h1, h2)

	result, err := BatchVerifyUseCase{Runtime: h.runtime}.Execute(context.Background(), BatchVerifyCommand{
		Caller:       h.stranger,
		Fingerprints: []entities.Fingerprint{h1, h2, h1, h2},
		BatchIDs:     []uint64{1, 0, 1, 2},
	})
	if err != nil {
		t.Fatalf("batch verify: %v", err)
	}
	want := []bool{true, false, false, false}
	for i := range want {
		if result.Results[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, result.Results)
		}
	}
	if verified, _ := h.store.IsVerified(context.Background(), h2); verified {
		t.Fatalf("expected h2 untouched by rejected entries")
	}
}

func TestBatchVerifyLengthMismatch(t *testing.T) {
	h := newHarness(t)
	_, err := BatchVerifyUseCase{Runtime: h.runtime}.Execute(context.Background(), BatchVerifyCommand{
		Fingerprints: []entities.Fingerprint{fp("h1")},
	})
	if !errors.Is(err, domainerrors.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestRegisterBatchRejectsDuplicateIDForAnyCaller(t *testing.T) {
	h := newHarness(t)
	h.register(t, 1, fp("h1"))

	_, err := RegisterBatchUseCase{Runtime: h.runtime}.Execute(context.Background(), RegisterBatchCommand{
		Caller:       h.owner,
		BatchID:      1,
		Name:         "Other",
		Brand:        "Acme",
		Fingerprints: []entities.Fingerprint{fp("h2")},
	})
	if !errors.Is(err, domainerrors.ErrBatchExists) {
		t.Fatalf("expected ErrBatchExists, got %v", err)
	}
	if batchOf, ok, _ := h.store.BatchOf(context.Background(), fp("h2")); ok {
		t.Fatalf("expected no membership from rejected call, got batch %d", batchOf)
	}
}

func TestRegisterBatchRequiresManufacturer(t *testing.T) {
	h := newHarness(t)
	eventsBefore := len(h.store.OutboxEvents())
	_, err := RegisterBatchUseCase{Runtime: h.runtime}.Execute(context.Background(), RegisterBatchCommand{
		Caller:       h.stranger,
		BatchID:      1,
		Name:         "Widget",
		Brand:        "Acme",
		Fingerprints: []entities.Fingerprint{fp("h1")},
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if _, exists, _ := h.store.GetBatch(context.Background(), 1); exists {
		t.Fatalf("expected no batch after rejection")
	}
	if len(h.store.OutboxEvents()) != eventsBefore {
		t.Fatalf("expected no event after rejection")
	}
}

func TestVerifyRejectsSerialFromAnotherBatch(t *testing.T) {
	h := newHarness(t)
	h.register(t, 1, fp("h1"))
	h.register(t, 2, fp("h2"))

	if _, err := h.verify(fp("h1"), 2); !errors.Is(err, domainerrors.ErrSerialNotInBatch) {
		t.Fatalf("expected ErrSerialNotInBatch, got %v", err)
	}
	if _, err := h.verify(fp("h1"), 3); !errors.Is(err, domainerrors.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if _, err := h.verify(fp("h1"), 0); !errors.Is(err, domainerrors.ErrInvalidBatchID) {
		t.Fatalf("expected ErrInvalidBatchID, got %v", err)
	}
	if count, _ := h.store.RecordCount(context.Background(), fp("h1")); count != 0 {
		t.Fatalf("expected no ledger record for rejected scans, got %d", count)
	}
}

func TestLaterRegistrationTakesOverMembership(t *testing.T) {
	h := newHarness(t)
	h.register(t, 1, fp("h1"))
	h.register(t, 2, fp("h1"))

	if _, err := h.verify(fp("h1"), 1); !errors.Is(err, domainerrors.ErrSerialNotInBatch) {
		t.Fatalf("expected ErrSerialNotInBatch under the earlier batch, got %v", err)
	}
	authentic, err := h.verify(fp("h1"), 2)
	if err != nil || !authentic {
		t.Fatalf("expected authentic under the later batch, got %v %v", authentic, err)
	}
}

func TestPauseBlocksStateChanges(t *testing.T) {
	h := newHarness(t)
	h.register(t, 1, fp("h1"))
	ctx := context.Background()
	pause := SetPausedUseCase{Runtime: h.runtime}

	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.maker, Paused: true}); !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.owner, Paused: true}); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.owner, Paused: true}); !errors.Is(err, domainerrors.ErrPauseGate) {
		t.Fatalf("expected pause gate error when already paused, got %v", err)
	}

	_, err := RegisterBatchUseCase{Runtime: h.runtime}.Execute(ctx, RegisterBatchCommand{
		Caller: h.maker, BatchID: 2, Name: "Widget", Brand: "Acme", Fingerprints: []entities.Fingerprint{fp("h2")},
	})
	if !errors.Is(err, domainerrors.ErrPaused) {
		t.Fatalf("register: expected ErrPaused, got %v", err)
	}
	_, err = UpdateMetadataUseCase{Runtime: h.runtime}.Execute(ctx, UpdateMetadataCommand{
		Caller: h.maker, BatchID: 1, Patch: entities.BatchMetadata{Description: "x"},
	})
	if !errors.Is(err, domainerrors.ErrPaused) {
		t.Fatalf("update metadata: expected ErrPaused, got %v", err)
	}
	if _, err := h.verify(fp("h1"), 1); !errors.Is(err, domainerrors.ErrPaused) {
		t.Fatalf("verify: expected ErrPaused, got %v", err)
	}
	_, err = BatchVerifyUseCase{Runtime: h.runtime}.Execute(ctx, BatchVerifyCommand{
		Fingerprints: []entities.Fingerprint{fp("h1")}, BatchIDs: []uint64{1},
	})
	if !errors.Is(err, domainerrors.ErrPaused) {
		t.Fatalf("batch verify: expected ErrPaused, got %v", err)
	}

	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.owner, Paused: false}); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.owner, Paused: false}); !errors.Is(err, domainerrors.ErrNotPaused) {
		t.Fatalf("expected ErrNotPaused, got %v", err)
	}
	if authentic, err := h.verify(fp("h1"), 1); err != nil || !authentic {
		t.Fatalf("expected verify to work after unpause, got %v %v", authentic, err)
	}
}

func TestRevokeAndRegrantDoesNotDuplicate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	authorize := AuthorizeManufacturerUseCase{Runtime: h.runtime}

	for _, flag := range []bool{true, false, true} {
		if _, err := authorize.Execute(ctx, AuthorizeManufacturerCommand{Caller: h.owner, Manufacturer: h.maker, Authorized: flag}); err != nil {
			t.Fatalf("authorize %v: %v", flag, err)
		}
	}
	list, _ := h.store.ListAuthorized(ctx)
	seen := 0
	for _, address := range list {
		if address == h.maker {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("expected manufacturer listed once, got %d in %v", seen, list)
	}
	if ok, _ := h.store.IsAuthorized(ctx, h.maker); !ok {
		t.Fatalf("expected manufacturer authorized")
	}

	_, err := authorize.Execute(ctx, AuthorizeManufacturerCommand{Caller: h.maker, Manufacturer: h.stranger, Authorized: true})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	_, err = authorize.Execute(ctx, AuthorizeManufacturerCommand{Caller: h.owner, Manufacturer: entities.ZeroAddress, Authorized: true})
	if !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestTransferOwnershipMovesRights(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	before := len(h.store.OutboxEvents())

	result, err := TransferOwnershipUseCase{Runtime: h.runtime}.Execute(ctx, TransferOwnershipCommand{Caller: h.owner, NewOwner: h.stranger})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.PreviousOwner != h.owner || result.NewOwner != h.stranger {
		t.Fatalf("unexpected result: %+v", result)
	}

	if ok, _ := h.store.IsAuthorized(ctx, h.owner); ok {
		t.Fatalf("expected previous owner to lose manufacturer rights")
	}
	if ok, _ := h.store.IsAuthorized(ctx, h.stranger); !ok {
		t.Fatalf("expected new owner to gain manufacturer rights")
	}

	events := h.store.OutboxEvents()[before:]
	wantTypes := []string{
		string(entities.EventAuthorizationChanged),
		string(entities.EventAuthorizationChanged),
		string(entities.EventOwnershipTransferred),
	}
	if len(events) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d", len(wantTypes), len(events))
	}
	for i, want := range wantTypes {
		if events[i].EventType != want {
			t.Fatalf("event %d: expected %s, got %s", i, want, events[i].EventType)
		}
	}

	pause := SetPausedUseCase{Runtime: h.runtime}
	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.owner, Paused: true}); !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected previous owner rejected, got %v", err)
	}
	if _, err := pause.Execute(ctx, SetPausedCommand{Caller: h.stranger, Paused: true}); err != nil {
		t.Fatalf("expected new owner to pause, got %v", err)
	}
}

func TestUpdateMetadataMergesNonEmptyFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := RegisterBatchUseCase{Runtime: h.runtime}.Execute(ctx, RegisterBatchCommand{
		Caller:       h.maker,
		BatchID:      1,
		Name:         "Widget",
		Brand:        "Acme",
		Fingerprints: []entities.Fingerprint{fp("h1")},
		Metadata:     entities.BatchMetadata{IPFSRef: "ipfs://a", Description: "first"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	update := UpdateMetadataUseCase{Runtime: h.runtime}
	result, err := update.Execute(ctx, UpdateMetadataCommand{
		Caller:  h.maker,
		BatchID: 1,
		Patch:   entities.BatchMetadata{Description: "second", ImageRef: "img://b"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := entities.BatchMetadata{IPFSRef: "ipfs://a", Description: "second", ImageRef: "img://b"}
	if result.Batch.Metadata != want {
		t.Fatalf("expected %+v, got %+v", want, result.Batch.Metadata)
	}
	stored, _, _ := h.store.GetBatch(ctx, 1)
	if stored.Metadata != want || stored.Name != "Widget" {
		t.Fatalf("unexpected stored batch: %+v", stored)
	}

	if _, err := update.Execute(ctx, UpdateMetadataCommand{Caller: h.maker, BatchID: 9}); !errors.Is(err, domainerrors.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if _, err := update.Execute(ctx, UpdateMetadataCommand{Caller: h.maker}); !errors.Is(err, domainerrors.ErrInvalidBatchID) {
		t.Fatalf("expected ErrInvalidBatchID, got %v", err)
	}
	if _, err := update.Execute(ctx, UpdateMetadataCommand{Caller: h.stranger, BatchID: 1}); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestCommittedEventsReachOutboxInOrder(t *testing.T) {
	h := newHarness(t)
	h.register(t, 1, fp("h1"))
	if _, err := h.verify(fp("h1"), 1); err != nil {
		t.Fatalf("verify: %v", err)
	}

	events := h.store.OutboxEvents()
	want := []string{
		string(entities.EventAuthorizationChanged),
		string(entities.EventBatchRegistered),
		string(entities.EventProductVerified),
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i].EventType != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], events[i].EventType)
		}
	}
}

type reentrantObserver struct {
	runtime *Runtime
	caller  entities.Address
	err     error
	calls   int
}

func (o *reentrantObserver) Observe(ctx context.Context, event entities.Event) error {
	if event.Type != entities.EventProductVerified {
		return nil
	}
	o.calls++
	_, o.err = SetPausedUseCase{Runtime: *o.runtime}.Execute(ctx, SetPausedCommand{Caller: o.caller, Paused: true})
	return o.err
}

func TestObserverCannotReenter(t *testing.T) {
	observer := &reentrantObserver{}
	h := newHarness(t, observer)
	observer.runtime = &h.runtime
	observer.caller = h.owner
	h.register(t, 1, fp("h1"))

	authentic, err := h.verify(fp("h1"), 1)
	if err != nil || !authentic {
		t.Fatalf("expected verify to commit despite observer, got %v %v", authentic, err)
	}
	if observer.calls != 1 {
		t.Fatalf("expected observer called once, got %d", observer.calls)
	}
	if !errors.Is(observer.err, domainerrors.ErrReentrantCall) {
		t.Fatalf("expected ErrReentrantCall from nested call, got %v", observer.err)
	}
	if paused, _ := h.store.Paused(context.Background()); paused {
		t.Fatalf("expected nested pause to have no effect")
	}
}
