package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/ports"
	"provenance/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is an in-memory state store for local runtime and tests. Mutate holds
// the write lock for the whole callback and undoes every write if it fails.
type Store struct {
	mu                 sync.RWMutex
	owner              entities.Address
	paused             bool
	roster             *entities.ManufacturerRoster
	batches            map[uint64]entities.ProductBatch
	membership         map[entities.Fingerprint]uint64
	verified           map[entities.Fingerprint]bool
	history            map[entities.Fingerprint][]entities.VerificationRecord
	totalVerifications uint64
	outbox             map[string]ports.OutboxMessage
	outboxOrder        []string
	outboxSent         map[string]time.Time
	logger             *slog.Logger
}

// NewStore starts with owner as the genesis owner and its only authorized
// manufacturer.
func NewStore(owner entities.Address, logger *slog.Logger) *Store {
	roster := entities.NewManufacturerRoster()
	roster.Set(owner, true)
	return &Store{
		owner:       owner,
		roster:      roster,
		batches:     make(map[uint64]entities.ProductBatch),
		membership:  make(map[entities.Fingerprint]uint64),
		verified:    make(map[entities.Fingerprint]bool),
		history:     make(map[entities.Fingerprint][]entities.VerificationRecord),
		outbox:      make(map[string]ports.OutboxMessage),
		outboxOrder: make([]string, 0),
		outboxSent:  make(map[string]time.Time),
		logger:      application.ResolveLogger(logger),
	}
}

func (s *Store) Mutate(ctx context.Context, fn func(ctx context.Context, tx ports.StateTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &stateTx{store: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		s.logger.Debug("memory mutation rolled back",
			"event", "authenticity_memory_mutation_rolled_back",
			"module", "product-integrity/authenticity-service",
			"layer", "adapter",
			"undone_writes", len(tx.undo),
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (s *Store) Owner(_ context.Context) (entities.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, nil
}

func (s *Store) IsAuthorized(_ context.Context, address entities.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.IsAuthorized(address), nil
}

func (s *Store) ListAuthorized(_ context.Context) ([]entities.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.List(), nil
}

func (s *Store) Paused(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused, nil
}

func (s *Store) GetBatch(_ context.Context, batchID uint64) (entities.ProductBatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[batchID]
	return batch, ok, nil
}

func (s *Store) BatchOf(_ context.Context, fingerprint entities.Fingerprint) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batchID, ok := s.membership[fingerprint]
	return batchID, ok, nil
}

func (s *Store) IsVerified(_ context.Context, fingerprint entities.Fingerprint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verified[fingerprint], nil
}

func (s *Store) History(
	_ context.Context,
	fingerprint entities.Fingerprint,
	page entities.HistoryPage,
) ([]entities.VerificationRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, total := s.historyPage(fingerprint, page)
	return records, total, nil
}

func (s *Store) RecordCount(_ context.Context, fingerprint entities.Fingerprint) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[fingerprint]), nil
}

func (s *Store) Statistics(_ context.Context) (entities.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics(), nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	messages := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		if _, sent := s.outboxSent[id]; sent {
			continue
		}
		if msg, ok := s.outbox[id]; ok {
			messages = append(messages, msg)
		}
		if len(messages) >= limit {
			break
		}
	}
	return messages, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	message.Status = outbox.StatusSent
	s.outbox[outboxID] = message
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

// OutboxEvents returns every outbox message, sent or not, in append order.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.OutboxMessage, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		if evt, ok := s.outbox[id]; ok {
			events = append(events, evt)
		}
	}
	return events
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) historyPage(fingerprint entities.Fingerprint, page entities.HistoryPage) ([]entities.VerificationRecord, int) {
	records := s.history[fingerprint]
	start, end := page.Window(len(records))
	return append([]entities.VerificationRecord(nil), records[start:end]...), len(records)
}

func (s *Store) statistics() entities.Statistics {
	return entities.Statistics{
		Owner:              s.owner,
		Paused:             s.paused,
		TotalProducts:      uint64(len(s.batches)),
		TotalVerifications: s.totalVerifications,
		TotalManufacturers: s.roster.Len(),
	}
}
