package postgresadapter

import (
	"time"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"

	"github.com/ethereum/go-ethereum/common"
)

const globalStateID = 1

// Batch ids are stored as the int64 bit pattern of the uint64 id.

type globalStateModel struct {
	ID                 int       `gorm:"column:id;primaryKey"`
	Owner              string    `gorm:"column:owner;not null"`
	Paused             bool      `gorm:"column:paused;not null"`
	TotalVerifications int64     `gorm:"column:total_verifications;not null"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (globalStateModel) TableName() string {
	return "authenticity_global_state"
}

// manufacturerModel keeps a row for every address ever flagged. Position is
// set only while the address sits in the enumeration list.
type manufacturerModel struct {
	Address    string    `gorm:"column:address;primaryKey"`
	Authorized bool      `gorm:"column:authorized;not null"`
	Position   *int      `gorm:"column:position;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (manufacturerModel) TableName() string {
	return "authenticity_manufacturers"
}

type batchModel struct {
	BatchID           int64     `gorm:"column:batch_id;primaryKey;autoIncrement:false"`
	Name              string    `gorm:"column:name;not null"`
	Brand             string    `gorm:"column:brand;not null"`
	IPFSRef           string    `gorm:"column:ipfs_ref"`
	Description       string    `gorm:"column:description"`
	ImageRef          string    `gorm:"column:image_ref"`
	Registrant        string    `gorm:"column:registrant"`
	SerialCount       int       `gorm:"column:serial_count"`
	VerificationCount int64     `gorm:"column:verification_count;not null"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (batchModel) TableName() string {
	return "authenticity_batches"
}

func batchModelFromEntity(batch entities.ProductBatch) batchModel {
	return batchModel{
		BatchID:           int64(batch.BatchID),
		Name:              batch.Name,
		Brand:             batch.Brand,
		IPFSRef:           batch.Metadata.IPFSRef,
		Description:       batch.Metadata.Description,
		ImageRef:          batch.Metadata.ImageRef,
		Registrant:        batch.Registrant.Hex(),
		SerialCount:       batch.SerialCount,
		VerificationCount: int64(batch.VerificationCount),
		CreatedAt:         batch.CreatedAt.UTC(),
		UpdatedAt:         batch.UpdatedAt.UTC(),
	}
}

func (m batchModel) toEntity() entities.ProductBatch {
	return entities.ProductBatch{
		BatchID: uint64(m.BatchID),
		Name:    m.Name,
		Brand:   m.Brand,
		Metadata: entities.BatchMetadata{
			IPFSRef:     m.IPFSRef,
			Description: m.Description,
			ImageRef:    m.ImageRef,
		},
		Registrant:        common.HexToAddress(m.Registrant),
		SerialCount:       m.SerialCount,
		VerificationCount: uint64(m.VerificationCount),
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

// serialModel carries both the membership index and the verification status of
// one fingerprint.
type serialModel struct {
	Fingerprint string `gorm:"column:fingerprint;primaryKey"`
	BatchID     int64  `gorm:"column:batch_id;index;not null"`
	Verified    bool   `gorm:"column:verified;not null"`
}

func (serialModel) TableName() string {
	return "authenticity_serials"
}

type verificationRecordModel struct {
	RecordID    string    `gorm:"column:record_id;primaryKey"`
	Fingerprint string    `gorm:"column:fingerprint;not null;uniqueIndex:authenticity_records_fingerprint_seq,priority:1"`
	Seq         int       `gorm:"column:seq;not null;uniqueIndex:authenticity_records_fingerprint_seq,priority:2"`
	BatchID     int64     `gorm:"column:batch_id"`
	Caller      string    `gorm:"column:caller"`
	Authentic   bool      `gorm:"column:authentic"`
	VerifiedAt  time.Time `gorm:"column:verified_at"`
}

func (verificationRecordModel) TableName() string {
	return "authenticity_verification_records"
}

func recordModelFromEntity(record entities.VerificationRecord) verificationRecordModel {
	return verificationRecordModel{
		RecordID:    record.RecordID,
		Fingerprint: record.Fingerprint.Hex(),
		Seq:         record.Sequence,
		BatchID:     int64(record.BatchID),
		Caller:      record.Caller.Hex(),
		Authentic:   record.Authentic,
		VerifiedAt:  record.VerifiedAt.UTC(),
	}
}

func (m verificationRecordModel) toEntity() entities.VerificationRecord {
	return entities.VerificationRecord{
		RecordID:    m.RecordID,
		Fingerprint: common.HexToHash(m.Fingerprint),
		BatchID:     uint64(m.BatchID),
		Caller:      common.HexToAddress(m.Caller),
		Authentic:   m.Authentic,
		Sequence:    m.Seq,
		VerifiedAt:  m.VerifiedAt.UTC(),
	}
}

// outboxModel rows written by one call share CreatedAt; Seq keeps their append
// order.
type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	Seq          int64      `gorm:"column:seq;autoIncrement;not null;index"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "authenticity_outbox"
}

func outboxModelFromPort(message ports.OutboxMessage) outboxModel {
	return outboxModel{
		OutboxID:     message.OutboxID,
		EventType:    message.EventType,
		PartitionKey: message.PartitionKey,
		Payload:      message.Payload,
		Status:       message.Status,
		CreatedAt:    message.CreatedAt.UTC(),
	}
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      m.Payload,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
