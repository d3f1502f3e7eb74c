package workers

import (
	"context"
	"log/slog"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

const defaultAuditConsumerGroup = "authenticity-audit-log"

// AuditLogConsumer writes every relayed authenticity event to the structured
// log, one line per envelope.
type AuditLogConsumer struct {
	Subscriber    ports.EventSubscriber
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c AuditLogConsumer) Start(ctx context.Context) error {
	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	group := c.ConsumerGroup
	if group == "" {
		group = defaultAuditConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, topic, group, c.handle)
}

func (c AuditLogConsumer) handle(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	logger.Info("authenticity audit event",
		"event", "authenticity_audit_event",
		"module", workerModule,
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"occurred_at", event.OccurredAt,
		"partition_key", event.PartitionKey,
		"data", string(event.Data),
	)
	return nil
}
