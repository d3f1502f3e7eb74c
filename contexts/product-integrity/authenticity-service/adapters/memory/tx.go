package memory

import (
	"context"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

// stateTx reads and writes the store without locking; Mutate already holds the
// write lock. Every write pushes its inverse onto undo.
type stateTx struct {
	store         *Store
	undo          []func()
	rosterSnapped bool
}

func (t *stateTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *stateTx) Owner(_ context.Context) (entities.Address, error) {
	return t.store.owner, nil
}

func (t *stateTx) IsAuthorized(_ context.Context, address entities.Address) (bool, error) {
	return t.store.roster.IsAuthorized(address), nil
}

func (t *stateTx) ListAuthorized(_ context.Context) ([]entities.Address, error) {
	return t.store.roster.List(), nil
}

func (t *stateTx) Paused(_ context.Context) (bool, error) {
	return t.store.paused, nil
}

func (t *stateTx) GetBatch(_ context.Context, batchID uint64) (entities.ProductBatch, bool, error) {
	batch, ok := t.store.batches[batchID]
	return batch, ok, nil
}

func (t *stateTx) BatchOf(_ context.Context, fingerprint entities.Fingerprint) (uint64, bool, error) {
	batchID, ok := t.store.membership[fingerprint]
	return batchID, ok, nil
}

func (t *stateTx) IsVerified(_ context.Context, fingerprint entities.Fingerprint) (bool, error) {
	return t.store.verified[fingerprint], nil
}

func (t *stateTx) History(
	_ context.Context,
	fingerprint entities.Fingerprint,
	page entities.HistoryPage,
) ([]entities.VerificationRecord, int, error) {
	records, total := t.store.historyPage(fingerprint, page)
	return records, total, nil
}

func (t *stateTx) RecordCount(_ context.Context, fingerprint entities.Fingerprint) (int, error) {
	return len(t.store.history[fingerprint]), nil
}

func (t *stateTx) Statistics(_ context.Context) (entities.Statistics, error) {
	return t.store.statistics(), nil
}

func (t *stateTx) SetAuthorization(_ context.Context, address entities.Address, authorized bool) error {
	if !t.rosterSnapped {
		snapshot := t.store.roster.Clone()
		t.undo = append(t.undo, func() { t.store.roster = snapshot })
		t.rosterSnapped = true
	}
	t.store.roster.Set(address, authorized)
	return nil
}

func (t *stateTx) SetOwner(_ context.Context, owner entities.Address) error {
	previous := t.store.owner
	t.undo = append(t.undo, func() { t.store.owner = previous })
	t.store.owner = owner
	return nil
}

func (t *stateTx) SetPaused(_ context.Context, paused bool) error {
	previous := t.store.paused
	t.undo = append(t.undo, func() { t.store.paused = previous })
	t.store.paused = paused
	return nil
}

func (t *stateTx) InsertBatch(_ context.Context, batch entities.ProductBatch) error {
	if _, exists := t.store.batches[batch.BatchID]; exists {
		return domainerrors.ErrBatchExists
	}
	t.store.batches[batch.BatchID] = batch
	t.undo = append(t.undo, func() { delete(t.store.batches, batch.BatchID) })
	return nil
}

func (t *stateTx) AssignSerial(_ context.Context, fingerprint entities.Fingerprint, batchID uint64) error {
	previous, had := t.store.membership[fingerprint]
	t.undo = append(t.undo, func() {
		if had {
			t.store.membership[fingerprint] = previous
			return
		}
		delete(t.store.membership, fingerprint)
	})
	t.store.membership[fingerprint] = batchID
	return nil
}

func (t *stateTx) ReplaceMetadata(
	_ context.Context,
	batchID uint64,
	metadata entities.BatchMetadata,
	updatedAt time.Time,
) error {
	batch, ok := t.store.batches[batchID]
	if !ok {
		return domainerrors.ErrBatchNotFound
	}
	previous := batch
	t.undo = append(t.undo, func() { t.store.batches[batchID] = previous })
	batch.Metadata = metadata
	batch.UpdatedAt = updatedAt.UTC()
	t.store.batches[batchID] = batch
	return nil
}

func (t *stateTx) MarkVerified(_ context.Context, fingerprint entities.Fingerprint) error {
	if t.store.verified[fingerprint] {
		return nil
	}
	t.undo = append(t.undo, func() { delete(t.store.verified, fingerprint) })
	t.store.verified[fingerprint] = true
	return nil
}

func (t *stateTx) IncrementVerifications(_ context.Context, batchID uint64) error {
	batch, ok := t.store.batches[batchID]
	if !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	previous := batch
	t.undo = append(t.undo, func() {
		t.store.batches[batchID] = previous
		t.store.totalVerifications--
	})
	batch.VerificationCount++
	t.store.batches[batchID] = batch
	t.store.totalVerifications++
	return nil
}

func (t *stateTx) AppendRecord(_ context.Context, record entities.VerificationRecord) error {
	fingerprint := record.Fingerprint
	length := len(t.store.history[fingerprint])
	t.undo = append(t.undo, func() {
		if length == 0 {
			delete(t.store.history, fingerprint)
			return
		}
		t.store.history[fingerprint] = t.store.history[fingerprint][:length]
	})
	t.store.history[fingerprint] = append(t.store.history[fingerprint], record)
	return nil
}

func (t *stateTx) AppendEvent(_ context.Context, event entities.Event) error {
	message, err := application.OutboxMessageFor(event)
	if err != nil {
		return err
	}
	if _, exists := t.store.outbox[message.OutboxID]; exists {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	length := len(t.store.outboxOrder)
	t.undo = append(t.undo, func() {
		delete(t.store.outbox, message.OutboxID)
		t.store.outboxOrder = t.store.outboxOrder[:length]
	})
	t.store.outbox[message.OutboxID] = message
	t.store.outboxOrder = append(t.store.outboxOrder, message.OutboxID)
	return nil
}
