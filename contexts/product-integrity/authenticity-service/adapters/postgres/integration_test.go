package postgresadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/ports"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newIntegrationRepository opens TEST_POSTGRES_DSN and recreates the schema.
// The tables it owns are dropped first, so point it at a disposable database.
func newIntegrationRepository(t *testing.T, owner entities.Address) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.Migrator().DropTable(
		&globalStateModel{},
		&manufacturerModel{},
		&batchModel{},
		&serialModel{},
		&verificationRecordModel{},
		&outboxModel{},
	); err != nil {
		t.Fatalf("drop tables: %v", err)
	}

	repo := NewRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repo.EnsureGenesis(ctx, owner, time.Now().UTC()); err != nil {
		t.Fatalf("genesis: %v", err)
	}
	return repo
}

func address(b byte) entities.Address {
	var a entities.Address
	a[19] = b
	return a
}

func TestIntegrationRosterSwapRemove(t *testing.T) {
	owner := address(1)
	repo := newIntegrationRepository(t, owner)
	ctx := context.Background()

	setAll := func(authorized bool, addresses ...entities.Address) {
		t.Helper()
		err := repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
			for _, a := range addresses {
				if err := tx.SetAuthorization(ctx, a, authorized); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("set authorization: %v", err)
		}
	}
	expectList := func(want ...entities.Address) {
		t.Helper()
		got, err := repo.ListAuthorized(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d manufacturers, got %v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("position %d: expected %s, got %s", i, want[i].Hex(), got[i].Hex())
			}
		}
	}

	a, b, c := address(2), address(3), address(4)
	setAll(true, a, b, c, a)
	expectList(owner, a, b, c)

	setAll(false, owner)
	expectList(c, a, b)

	setAll(false, a)
	setAll(true, a)
	expectList(c, b, a)

	setAll(false, address(9))
	expectList(c, b, a)
	if ok, _ := repo.IsAuthorized(ctx, owner); ok {
		t.Fatalf("expected revoked owner to stay unauthorized")
	}
}

func TestIntegrationVerificationStatusIsMonotone(t *testing.T) {
	owner := address(1)
	repo := newIntegrationRepository(t, owner)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h1 := entities.DeriveFingerprint(1, "h1")

	err := repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		batch, err := entities.NewProductBatch(1, "Widget", "Acme", []entities.Fingerprint{h1}, entities.BatchMetadata{}, owner, now)
		if err != nil {
			return err
		}
		if err := tx.InsertBatch(ctx, batch); err != nil {
			return err
		}
		if err := tx.AssignSerial(ctx, h1, 1); err != nil {
			return err
		}
		if err := tx.MarkVerified(ctx, h1); err != nil {
			return err
		}
		return tx.IncrementVerifications(ctx, 1)
	})
	if err != nil {
		t.Fatalf("first verification: %v", err)
	}

	err = repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		if err := tx.IncrementVerifications(ctx, 1); err != nil {
			return err
		}
		return tx.MarkVerified(ctx, h1)
	})
	if !errors.Is(err, domainerrors.ErrRepositoryInvariantBroke) {
		t.Fatalf("expected ErrRepositoryInvariantBroke on second mark, got %v", err)
	}

	err = repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		return tx.IncrementVerifications(ctx, 42)
	})
	if !errors.Is(err, domainerrors.ErrRepositoryInvariantBroke) {
		t.Fatalf("expected ErrRepositoryInvariantBroke for unknown batch, got %v", err)
	}

	verified, _ := repo.IsVerified(ctx, h1)
	batch, _, _ := repo.GetBatch(ctx, 1)
	stats, _ := repo.Statistics(ctx)
	if !verified || batch.VerificationCount != 1 || stats.TotalVerifications != 1 {
		t.Fatalf("expected one committed verification, got verified=%v batch=%d total=%d",
			verified, batch.VerificationCount, stats.TotalVerifications)
	}

	err = repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		return tx.AssignSerial(ctx, h1, 2)
	})
	if err != nil {
		t.Fatalf("reassign serial: %v", err)
	}
	if verified, _ := repo.IsVerified(ctx, h1); !verified {
		t.Fatalf("expected membership move to keep the verified flag")
	}
}

func TestIntegrationOutboxKeepsAppendOrder(t *testing.T) {
	owner := address(1)
	repo := newIntegrationRepository(t, owner)
	ctx := context.Background()
	now := time.Now().UTC()

	ids := []string{"evt-c", "evt-a", "evt-b"}
	err := repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		for _, id := range ids {
			if err := tx.AppendEvent(ctx, entities.NewEvent(id, now, entities.PauseChanged{Paused: true})); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("append events: %v", err)
	}

	pending, err := repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != len(ids) {
		t.Fatalf("expected %d pending, got %d", len(ids), len(pending))
	}
	for i, id := range ids {
		if pending[i].OutboxID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, pending[i].OutboxID)
		}
	}

	if err := repo.MarkOutboxSent(ctx, "evt-c", now); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	pending, _ = repo.ListPendingOutbox(ctx, 10)
	if len(pending) != 2 || pending[0].OutboxID != "evt-a" {
		t.Fatalf("unexpected pending after mark: %+v", pending)
	}
}

func TestIntegrationHistoryTotal(t *testing.T) {
	owner := address(1)
	repo := newIntegrationRepository(t, owner)
	ctx := context.Background()
	h1 := entities.DeriveFingerprint(1, "h1")

	err := repo.Mutate(ctx, func(ctx context.Context, tx ports.StateTx) error {
		for seq := 1; seq <= 3; seq++ {
			record := entities.VerificationRecord{
				RecordID:    "rec-" + strconv.Itoa(seq),
				Fingerprint: h1,
				BatchID:     1,
				Caller:      owner,
				Authentic:   seq == 1,
				Sequence:    seq,
				VerifiedAt:  time.Now().UTC(),
			}
			if err := tx.AppendRecord(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("append records: %v", err)
	}

	records, total, err := repo.History(ctx, h1, entities.HistoryPage{Offset: 2, Limit: 5})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 3 || len(records) != 1 || records[0].Sequence != 3 {
		t.Fatalf("unexpected page: total=%d records=%+v", total, records)
	}
}
