package entities

import (
	"strconv"
	"time"
)

type EventType string

const (
	EventBatchRegistered      EventType = "authenticity.batch_registered"
	EventMetadataUpdated      EventType = "authenticity.batch_metadata_updated"
	EventProductVerified      EventType = "authenticity.product_verified"
	EventAuthorizationChanged EventType = "authenticity.authorization_changed"
	EventOwnershipTransferred EventType = "authenticity.ownership_transferred"
	EventPauseChanged         EventType = "authenticity.pause_changed"
)

// Event is one entry of the external audit feed. Data holds the typed payload
// for Type.
type Event struct {
	EventID    string
	Type       EventType
	OccurredAt time.Time
	Data       EventPayload
}

type EventPayload interface {
	eventType() EventType
	partitionKey() string
}

func NewEvent(eventID string, occurredAt time.Time, data EventPayload) Event {
	return Event{
		EventID:    eventID,
		Type:       data.eventType(),
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}
}

func (e Event) PartitionKey() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.partitionKey()
}

type BatchRegistered struct {
	BatchID          uint64  `json:"batch_id"`
	Name             string  `json:"name"`
	Brand            string  `json:"brand"`
	FingerprintCount int     `json:"fingerprint_count"`
	Registrant       Address `json:"registrant"`
}

func (BatchRegistered) eventType() EventType    { return EventBatchRegistered }
func (p BatchRegistered) partitionKey() string { return strconv.FormatUint(p.BatchID, 10) }

type MetadataUpdated struct {
	BatchID     uint64  `json:"batch_id"`
	IPFSRef     string  `json:"ipfs_ref"`
	Description string  `json:"description"`
	ImageRef    string  `json:"image_ref"`
	UpdatedBy   Address `json:"updated_by"`
}

func (MetadataUpdated) eventType() EventType    { return EventMetadataUpdated }
func (p MetadataUpdated) partitionKey() string { return strconv.FormatUint(p.BatchID, 10) }

type ProductVerified struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	BatchID     uint64      `json:"batch_id"`
	Authentic   bool        `json:"authentic"`
	Caller      Address     `json:"caller"`
	Timestamp   time.Time   `json:"timestamp"`
}

func (ProductVerified) eventType() EventType    { return EventProductVerified }
func (p ProductVerified) partitionKey() string { return p.Fingerprint.Hex() }

type AuthorizationChanged struct {
	Address    Address `json:"address"`
	Authorized bool    `json:"authorized"`
}

func (AuthorizationChanged) eventType() EventType    { return EventAuthorizationChanged }
func (p AuthorizationChanged) partitionKey() string { return p.Address.Hex() }

type OwnershipTransferred struct {
	PreviousOwner Address `json:"previous_owner"`
	NewOwner      Address `json:"new_owner"`
}

func (OwnershipTransferred) eventType() EventType    { return EventOwnershipTransferred }
func (p OwnershipTransferred) partitionKey() string { return p.NewOwner.Hex() }

type PauseChanged struct {
	Paused bool    `json:"paused"`
	Caller Address `json:"caller"`
}

func (PauseChanged) eventType() EventType  { return EventPauseChanged }
func (PauseChanged) partitionKey() string { return "pause" }
