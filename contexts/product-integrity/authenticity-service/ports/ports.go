package ports

import (
	"context"
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/internal/shared/events"
	"provenance/internal/shared/outbox"
)

// AuthorizationReader exposes owner identity and manufacturer flags.
type AuthorizationReader interface {
	Owner(ctx context.Context) (entities.Address, error)
	IsAuthorized(ctx context.Context, address entities.Address) (bool, error)
	ListAuthorized(ctx context.Context) ([]entities.Address, error)
}

type PauseReader interface {
	Paused(ctx context.Context) (bool, error)
}

// RegistryReader exposes batches and the serial membership index.
type RegistryReader interface {
	GetBatch(ctx context.Context, batchID uint64) (entities.ProductBatch, bool, error)
	BatchOf(ctx context.Context, fingerprint entities.Fingerprint) (uint64, bool, error)
}

// LedgerReader exposes verification status, history and counters.
type LedgerReader interface {
	IsVerified(ctx context.Context, fingerprint entities.Fingerprint) (bool, error)
	// History returns one page of records together with the fingerprint's
	// total record count, both read from the same snapshot.
	History(ctx context.Context, fingerprint entities.Fingerprint, page entities.HistoryPage) ([]entities.VerificationRecord, int, error)
	RecordCount(ctx context.Context, fingerprint entities.Fingerprint) (int, error)
	Statistics(ctx context.Context) (entities.Statistics, error)
}

type StateReader interface {
	AuthorizationReader
	PauseReader
	RegistryReader
	LedgerReader
}

type AuthorizationWriter interface {
	// SetAuthorization flips the flag and maintains the enumeration list.
	SetAuthorization(ctx context.Context, address entities.Address, authorized bool) error
	SetOwner(ctx context.Context, owner entities.Address) error
}

type PauseWriter interface {
	SetPaused(ctx context.Context, paused bool) error
}

type RegistryWriter interface {
	// InsertBatch must fail with ErrBatchExists for a known id.
	InsertBatch(ctx context.Context, batch entities.ProductBatch) error
	// AssignSerial records membership; a later assignment replaces an earlier one.
	AssignSerial(ctx context.Context, fingerprint entities.Fingerprint, batchID uint64) error
	ReplaceMetadata(ctx context.Context, batchID uint64, metadata entities.BatchMetadata, updatedAt time.Time) error
}

type LedgerWriter interface {
	MarkVerified(ctx context.Context, fingerprint entities.Fingerprint) error
	// IncrementVerifications bumps both the global and the per-batch first-scan counters.
	IncrementVerifications(ctx context.Context, batchID uint64) error
	AppendRecord(ctx context.Context, record entities.VerificationRecord) error
}

type EventWriter interface {
	AppendEvent(ctx context.Context, event entities.Event) error
}

// StateTx is the write view handed to a Mutate callback.
type StateTx interface {
	StateReader
	AuthorizationWriter
	PauseWriter
	RegistryWriter
	LedgerWriter
	EventWriter
}

// StateStore owns all engine state. Mutate runs fn with exclusive write access;
// every write and appended event inside fn commits together or not at all.
type StateStore interface {
	StateReader
	Mutate(ctx context.Context, fn func(ctx context.Context, tx StateTx) error) error
}

// EventObserver receives committed events synchronously, inside the call that
// produced them. An observer that calls back into the engine must pass the ctx
// it was given: that context marks the running call, so a nested mutation fails
// with ErrReentrantCall. A detached context (context.Background) is not
// recognised and waits for the running call to finish, which deadlocks when
// made synchronously from Observe.
type EventObserver interface {
	Observe(ctx context.Context, event entities.Event) error
}

// LabelRenderer encodes a (fingerprint, batch id) pair into a scannable image.
type LabelRenderer interface {
	Render(fingerprint entities.Fingerprint, batchID uint64) ([]byte, error)
}

// Clock allows deterministic timestamps in tests.
type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxMessage = outbox.Message

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

type EventEnvelope = events.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
