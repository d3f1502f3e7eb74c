package labels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"

	"github.com/skip2/go-qrcode"
)

const (
	payloadPrefix = "authenticity"
	payloadV1     = "v1"
	defaultSize   = 256
)

var ErrInvalidPayload = errors.New("invalid label payload")

// QRRenderer renders PNG QR codes carrying the pair a scanner submits to verify.
type QRRenderer struct {
	Size     int
	Recovery qrcode.RecoveryLevel
}

func NewQRRenderer() QRRenderer {
	return QRRenderer{Size: defaultSize, Recovery: qrcode.Medium}
}

func (r QRRenderer) Render(fingerprint entities.Fingerprint, batchID uint64) ([]byte, error) {
	size := r.Size
	if size <= 0 {
		size = defaultSize
	}
	png, err := qrcode.Encode(Payload(fingerprint, batchID), r.Recovery, size)
	if err != nil {
		return nil, fmt.Errorf("encode label: %w", err)
	}
	return png, nil
}

// Payload formats a label as "authenticity:v1:<batch id>:<fingerprint hex>".
func Payload(fingerprint entities.Fingerprint, batchID uint64) string {
	return strings.Join([]string{
		payloadPrefix,
		payloadV1,
		strconv.FormatUint(batchID, 10),
		fingerprint.Hex(),
	}, ":")
}

// ParsePayload reverses Payload. It does not check the pair against the registry.
func ParsePayload(raw string) (entities.Fingerprint, uint64, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 4 || parts[0] != payloadPrefix || parts[1] != payloadV1 {
		return entities.Fingerprint{}, 0, ErrInvalidPayload
	}
	batchID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return entities.Fingerprint{}, 0, ErrInvalidPayload
	}
	fingerprint, err := entities.ParseFingerprint(parts[3])
	if err != nil {
		return entities.Fingerprint{}, 0, ErrInvalidPayload
	}
	return fingerprint, batchID, nil
}
