package postgresadapter

import (
	"context"
	"errors"
	"time"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stateTx is the write view bound to one open transaction.
type stateTx struct {
	reader
}

func (t *stateTx) SetAuthorization(ctx context.Context, address entities.Address, authorized bool) error {
	db := t.db.WithContext(ctx)
	row := manufacturerModel{Address: address.Hex()}
	if err := db.Where("address = ?", row.Address).First(&row).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	switch {
	case authorized && !row.Authorized:
		var listed int64
		if err := db.Model(&manufacturerModel{}).
			Where("position IS NOT NULL").
			Count(&listed).
			Error; err != nil {
			return err
		}
		position := int(listed)
		row.Position = &position
	case !authorized && row.Authorized && row.Position != nil:
		var last manufacturerModel
		if err := db.Where("position IS NOT NULL").
			Order("position DESC").
			First(&last).
			Error; err != nil {
			return err
		}
		if last.Address != row.Address {
			if err := db.Model(&manufacturerModel{}).
				Where("address = ?", last.Address).
				Update("position", *row.Position).
				Error; err != nil {
				return err
			}
		}
		row.Position = nil
	}

	row.Authorized = authorized
	row.UpdatedAt = time.Now().UTC()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"authorized", "position", "updated_at"}),
	}).Create(&row).Error
}

func (t *stateTx) SetOwner(ctx context.Context, owner entities.Address) error {
	return t.updateGlobal(ctx, map[string]any{"owner": owner.Hex()})
}

func (t *stateTx) SetPaused(ctx context.Context, paused bool) error {
	return t.updateGlobal(ctx, map[string]any{"paused": paused})
}

func (t *stateTx) updateGlobal(ctx context.Context, values map[string]any) error {
	values["updated_at"] = time.Now().UTC()
	result := t.db.WithContext(ctx).
		Model(&globalStateModel{}).
		Where("id = ?", globalStateID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

func (t *stateTx) InsertBatch(ctx context.Context, batch entities.ProductBatch) error {
	row := batchModelFromEntity(batch)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrBatchExists
		}
		return err
	}
	return nil
}

// AssignSerial moves membership to batchID and keeps the verified flag.
func (t *stateTx) AssignSerial(ctx context.Context, fingerprint entities.Fingerprint, batchID uint64) error {
	row := serialModel{
		Fingerprint: fingerprint.Hex(),
		BatchID:     int64(batchID),
	}
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}},
		DoUpdates: clause.AssignmentColumns([]string{"batch_id"}),
	}).Create(&row).Error
}

func (t *stateTx) ReplaceMetadata(
	ctx context.Context,
	batchID uint64,
	metadata entities.BatchMetadata,
	updatedAt time.Time,
) error {
	result := t.db.WithContext(ctx).
		Model(&batchModel{}).
		Where("batch_id = ?", int64(batchID)).
		Updates(map[string]any{
			"ipfs_ref":    metadata.IPFSRef,
			"description": metadata.Description,
			"image_ref":   metadata.ImageRef,
			"updated_at":  updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBatchNotFound
	}
	return nil
}

// MarkVerified flips the status only from false, so it never resets.
func (t *stateTx) MarkVerified(ctx context.Context, fingerprint entities.Fingerprint) error {
	result := t.db.WithContext(ctx).
		Model(&serialModel{}).
		Where("fingerprint = ? AND verified = ?", fingerprint.Hex(), false).
		Update("verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

func (t *stateTx) IncrementVerifications(ctx context.Context, batchID uint64) error {
	db := t.db.WithContext(ctx)
	result := db.Model(&batchModel{}).
		Where("batch_id = ?", int64(batchID)).
		Update("verification_count", gorm.Expr("verification_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return db.Model(&globalStateModel{}).
		Where("id = ?", globalStateID).
		Update("total_verifications", gorm.Expr("total_verifications + 1")).
		Error
}

func (t *stateTx) AppendRecord(ctx context.Context, record entities.VerificationRecord) error {
	row := recordModelFromEntity(record)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

func (t *stateTx) AppendEvent(ctx context.Context, event entities.Event) error {
	message, err := application.OutboxMessageFor(event)
	if err != nil {
		return err
	}
	row := outboxModelFromPort(message)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}
