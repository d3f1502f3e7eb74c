package application

import (
	"encoding/json"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
	"provenance/internal/shared/outbox"
)

const (
	SourceService = "authenticity-service"
	SchemaVersion = 1
)

func BuildEnvelope(event entities.Event) (ports.EventEnvelope, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          event.EventID,
		EventType:        string(event.Type),
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    SourceService,
		SchemaVersion:    SchemaVersion,
		PartitionKeyPath: partitionKeyPath(event.Type),
		PartitionKey:     event.PartitionKey(),
		Data:             data,
	}, nil
}

// OutboxMessageFor serializes event into the outbox row shape shared by the
// state store adapters.
func OutboxMessageFor(event entities.Event) (ports.OutboxMessage, error) {
	envelope, err := BuildEnvelope(event)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    string(event.Type),
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}, nil
}

func partitionKeyPath(eventType entities.EventType) string {
	switch eventType {
	case entities.EventBatchRegistered, entities.EventMetadataUpdated:
		return "batch_id"
	case entities.EventProductVerified:
		return "fingerprint"
	case entities.EventAuthorizationChanged:
		return "address"
	case entities.EventOwnershipTransferred:
		return "new_owner"
	default:
		return ""
	}
}
