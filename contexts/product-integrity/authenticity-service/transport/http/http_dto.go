package httptransport

type AuthorizeManufacturerRequest struct {
	Authorized bool `json:"authorized"`
}

type AuthorizationResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}

type ListManufacturersResponse struct {
	Items []string `json:"items"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type TransferOwnershipResponse struct {
	PreviousOwner string `json:"previous_owner"`
	NewOwner      string `json:"new_owner"`
}

type PauseResponse struct {
	Paused bool `json:"paused"`
}

type BatchMetadataDTO struct {
	IPFSRef     string `json:"ipfs_ref,omitempty"`
	Description string `json:"description,omitempty"`
	ImageRef    string `json:"image_ref,omitempty"`
}

type RegisterBatchRequest struct {
	BatchID      uint64           `json:"batch_id"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand"`
	Fingerprints []string         `json:"fingerprints"`
	Metadata     BatchMetadataDTO `json:"metadata"`
}

type UpdateMetadataRequest struct {
	IPFSRef     string `json:"ipfs_ref,omitempty"`
	Description string `json:"description,omitempty"`
	ImageRef    string `json:"image_ref,omitempty"`
}

type BatchDTO struct {
	BatchID           uint64           `json:"batch_id"`
	Name              string           `json:"name"`
	Brand             string           `json:"brand"`
	Metadata          BatchMetadataDTO `json:"metadata"`
	Registrant        string           `json:"registrant"`
	SerialCount       int              `json:"serial_count"`
	VerificationCount uint64           `json:"verification_count"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type BatchResponse struct {
	Item BatchDTO `json:"item"`
}

type GetBatchesBulkRequest struct {
	BatchIDs []uint64 `json:"batch_ids"`
}

type BatchViewDTO struct {
	Exists bool     `json:"exists"`
	Item   BatchDTO `json:"item"`
}

type GetBatchesBulkResponse struct {
	Items []BatchViewDTO `json:"items"`
}

type VerifyRequest struct {
	Fingerprint string `json:"fingerprint"`
	BatchID     uint64 `json:"batch_id"`
}

// ScanRequest carries the raw text decoded from a product label.
type ScanRequest struct {
	Payload string `json:"payload"`
}

type VerificationRecordDTO struct {
	RecordID    string `json:"record_id"`
	Fingerprint string `json:"fingerprint"`
	BatchID     uint64 `json:"batch_id"`
	Caller      string `json:"caller"`
	Authentic   bool   `json:"authentic"`
	Sequence    int    `json:"sequence"`
	VerifiedAt  string `json:"verified_at"`
}

type VerifyResponse struct {
	Authentic bool                  `json:"authentic"`
	Record    VerificationRecordDTO `json:"record"`
}

type BatchVerifyRequest struct {
	Fingerprints []string `json:"fingerprints"`
	BatchIDs     []uint64 `json:"batch_ids"`
}

type BatchVerifyResponse struct {
	Results []bool `json:"results"`
}

type FingerprintStatusResponse struct {
	Fingerprint       string `json:"fingerprint"`
	Verified          bool   `json:"verified"`
	VerificationCount int    `json:"verification_count"`
}

type HistoryRequest struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type HistoryResponse struct {
	Fingerprint string                  `json:"fingerprint"`
	Total       int                     `json:"total"`
	Items       []VerificationRecordDTO `json:"items"`
}

type HistoryBulkRequest struct {
	Fingerprints []string `json:"fingerprints"`
	Offset       int      `json:"offset,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

type HistoryBulkResponse struct {
	Items []HistoryResponse `json:"items"`
}

type StatisticsResponse struct {
	Owner              string `json:"owner"`
	Paused             bool   `json:"paused"`
	TotalProducts      uint64 `json:"total_products"`
	TotalVerifications uint64 `json:"total_verifications"`
	TotalManufacturers int    `json:"total_manufacturers"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
