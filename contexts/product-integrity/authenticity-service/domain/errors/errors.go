package errors

import (
	"errors"
	"fmt"
)

// ErrPauseGate is the class shared by both pause-state rejections.
var ErrPauseGate = errors.New("pause gate rejected call")

var (
	ErrNotOwner         = errors.New("caller is not the owner")
	ErrNotAuthorized    = errors.New("caller is not an authorized manufacturer")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidBatchID   = errors.New("invalid batch id")
	ErrBatchExists      = errors.New("batch already exists")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrEmptyName        = errors.New("product name is empty")
	ErrEmptyBrand       = errors.New("brand is empty")
	ErrNoSerials        = errors.New("no serial fingerprints supplied")
	ErrInvalidOwner     = errors.New("new owner equals current owner")
	ErrPaused           = fmt.Errorf("%w: system is paused", ErrPauseGate)
	ErrNotPaused        = fmt.Errorf("%w: system is not paused", ErrPauseGate)
	ErrSerialNotInBatch = errors.New("serial does not belong to batch")
	ErrLengthMismatch   = errors.New("input lengths differ")
	ErrReentrantCall    = errors.New("reentrant call")

	ErrInvalidFingerprint       = errors.New("invalid fingerprint")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
