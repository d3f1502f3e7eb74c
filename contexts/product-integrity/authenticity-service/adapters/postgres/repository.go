package postgresadapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
	"provenance/contexts/product-integrity/authenticity-service/ports"
	"provenance/internal/shared/outbox"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the Postgres state store. Every Mutate call is one database
// transaction that first locks the global state row, so mutations from any
// number of processes apply one at a time.
type Repository struct {
	reader
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{
		reader: reader{db: db},
		logger: application.ResolveLogger(logger),
	}
}

// Migrate creates or updates the schema.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&globalStateModel{},
		&manufacturerModel{},
		&batchModel{},
		&serialModel{},
		&verificationRecordModel{},
		&outboxModel{},
	)
}

// EnsureGenesis seeds the global state row with owner as owner and first
// authorized manufacturer. An already seeded database is left untouched.
func (r *Repository) EnsureGenesis(ctx context.Context, owner entities.Address, now time.Time) error {
	if owner == entities.ZeroAddress {
		return domainerrors.ErrInvalidAddress
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state := globalStateModel{
			ID:        globalStateID,
			Owner:     owner.Hex(),
			UpdatedAt: now.UTC(),
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&state)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		position := 0
		if err := tx.Create(&manufacturerModel{
			Address:    owner.Hex(),
			Authorized: true,
			Position:   &position,
			UpdatedAt:  now.UTC(),
		}).Error; err != nil {
			return err
		}
		r.logger.Info("genesis state seeded",
			"event", "authenticity_genesis_seeded",
			"module", "product-integrity/authenticity-service",
			"layer", "adapter",
			"owner", owner.Hex(),
		)
		return nil
	})
}

func (r *Repository) Mutate(ctx context.Context, fn func(ctx context.Context, tx ports.StateTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var state globalStateModel
		if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", globalStateID).
			First(&state).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("global state not seeded: %w", domainerrors.ErrRepositoryInvariantBroke)
			}
			return err
		}
		return fn(ctx, &stateTx{reader: reader{db: db}})
	})
}

const outboxListOrder = "created_at ASC, seq ASC"

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order(outboxListOrder).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outbox.StatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

// reader implements ports.StateReader over either the pool or an open
// transaction.
type reader struct {
	db *gorm.DB
}

func (r reader) globalState(ctx context.Context) (globalStateModel, error) {
	var state globalStateModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", globalStateID).
		First(&state).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return globalStateModel{}, fmt.Errorf("global state not seeded: %w", domainerrors.ErrRepositoryInvariantBroke)
		}
		return globalStateModel{}, err
	}
	return state, nil
}

func (r reader) Owner(ctx context.Context) (entities.Address, error) {
	state, err := r.globalState(ctx)
	if err != nil {
		return entities.ZeroAddress, err
	}
	return common.HexToAddress(state.Owner), nil
}

func (r reader) IsAuthorized(ctx context.Context, address entities.Address) (bool, error) {
	var row manufacturerModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.Hex()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.Authorized, nil
}

func (r reader) ListAuthorized(ctx context.Context) ([]entities.Address, error) {
	var rows []manufacturerModel
	if err := r.db.WithContext(ctx).
		Where("position IS NOT NULL").
		Order("position ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Address, 0, len(rows))
	for _, row := range rows {
		items = append(items, common.HexToAddress(row.Address))
	}
	return items, nil
}

func (r reader) Paused(ctx context.Context) (bool, error) {
	state, err := r.globalState(ctx)
	if err != nil {
		return false, err
	}
	return state.Paused, nil
}

func (r reader) GetBatch(ctx context.Context, batchID uint64) (entities.ProductBatch, bool, error) {
	var row batchModel
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", int64(batchID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProductBatch{}, false, nil
		}
		return entities.ProductBatch{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r reader) serial(ctx context.Context, fingerprint entities.Fingerprint) (serialModel, bool, error) {
	var row serialModel
	err := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint.Hex()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return serialModel{}, false, nil
		}
		return serialModel{}, false, err
	}
	return row, true, nil
}

func (r reader) BatchOf(ctx context.Context, fingerprint entities.Fingerprint) (uint64, bool, error) {
	row, ok, err := r.serial(ctx, fingerprint)
	if err != nil || !ok {
		return 0, false, err
	}
	return uint64(row.BatchID), true, nil
}

func (r reader) IsVerified(ctx context.Context, fingerprint entities.Fingerprint) (bool, error) {
	row, ok, err := r.serial(ctx, fingerprint)
	if err != nil || !ok {
		return false, err
	}
	return row.Verified, nil
}

func (r reader) History(
	ctx context.Context,
	fingerprint entities.Fingerprint,
	page entities.HistoryPage,
) ([]entities.VerificationRecord, int, error) {
	var (
		rows  []verificationRecordModel
		count int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&verificationRecordModel{}).
			Where("fingerprint = ?", fingerprint.Hex()).
			Count(&count).
			Error; err != nil {
			return err
		}
		query := tx.Where("fingerprint = ?", fingerprint.Hex()).Order("seq ASC")
		if page.Offset > 0 {
			query = query.Offset(page.Offset)
		}
		if page.Limit > 0 {
			query = query.Limit(page.Limit)
		}
		return query.Find(&rows).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	items := make([]entities.VerificationRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(count), nil
}

func (r reader) RecordCount(ctx context.Context, fingerprint entities.Fingerprint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&verificationRecordModel{}).
		Where("fingerprint = ?", fingerprint.Hex()).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r reader) Statistics(ctx context.Context) (entities.Statistics, error) {
	state, err := r.globalState(ctx)
	if err != nil {
		return entities.Statistics{}, err
	}
	var batches int64
	if err := r.db.WithContext(ctx).Model(&batchModel{}).Count(&batches).Error; err != nil {
		return entities.Statistics{}, err
	}
	var manufacturers int64
	if err := r.db.WithContext(ctx).
		Model(&manufacturerModel{}).
		Where("position IS NOT NULL").
		Count(&manufacturers).
		Error; err != nil {
		return entities.Statistics{}, err
	}
	return entities.Statistics{
		Owner:              common.HexToAddress(state.Owner),
		Paused:             state.Paused,
		TotalProducts:      uint64(batches),
		TotalVerifications: uint64(state.TotalVerifications),
		TotalManufacturers: int(manufacturers),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
