package entities

import (
	"time"

	domainerrors "provenance/contexts/product-integrity/authenticity-service/domain/errors"
)

// BatchMetadata holds the only fields of a batch that may change after creation.
type BatchMetadata struct {
	IPFSRef     string
	Description string
	ImageRef    string
}

// Merge replaces each field only when the patch carries a non-empty value.
func (m BatchMetadata) Merge(patch BatchMetadata) BatchMetadata {
	if patch.IPFSRef != "" {
		m.IPFSRef = patch.IPFSRef
	}
	if patch.Description != "" {
		m.Description = patch.Description
	}
	if patch.ImageRef != "" {
		m.ImageRef = patch.ImageRef
	}
	return m
}

type ProductBatch struct {
	BatchID           uint64
	Name              string
	Brand             string
	Metadata          BatchMetadata
	Registrant        Address
	SerialCount       int
	VerificationCount uint64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BatchView is a bulk-read slot. Missing ids come back with Exists=false and
// a zero batch.
type BatchView struct {
	Batch  ProductBatch
	Exists bool
}

func NewProductBatch(
	batchID uint64,
	name string,
	brand string,
	fingerprints []Fingerprint,
	metadata BatchMetadata,
	registrant Address,
	now time.Time,
) (ProductBatch, error) {
	if batchID == 0 {
		return ProductBatch{}, domainerrors.ErrInvalidBatchID
	}
	if name == "" {
		return ProductBatch{}, domainerrors.ErrEmptyName
	}
	if brand == "" {
		return ProductBatch{}, domainerrors.ErrEmptyBrand
	}
	if len(fingerprints) == 0 {
		return ProductBatch{}, domainerrors.ErrNoSerials
	}
	return ProductBatch{
		BatchID:     batchID,
		Name:        name,
		Brand:       brand,
		Metadata:    metadata,
		Registrant:  registrant,
		SerialCount: len(fingerprints),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}
