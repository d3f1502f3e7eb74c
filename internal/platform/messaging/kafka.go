package messaging

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"provenance/internal/shared/events"
)

const subscriberBuffer = 128

// ErrSubscriberBacklog is returned by Publish when a consumer group member has
// no buffer left. The outbox keeps the message pending and retries it.
var ErrSubscriberBacklog = errors.New("subscriber backlog full")

// Kafka is the event bus behind the outbox relay. Every consumer of
// authenticity.events runs in the same process as its relay, so delivery is
// in-process with Kafka's group semantics: each consumer group sees every
// event once, and events sharing a partition key go to the same group member in
// publish order. Brokers are kept for logging only.
type Kafka struct {
	mu      sync.RWMutex
	topics  map[string]map[string]*consumerGroup
	brokers []string
	logger  *slog.Logger
}

type consumerGroup struct {
	members []chan events.Envelope
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	k := &Kafka{
		topics:  make(map[string]map[string]*consumerGroup),
		brokers: append([]string(nil), brokers...),
		logger:  logger,
	}
	if logger != nil {
		logger.Debug("event bus ready",
			"event", "kafka_bus_ready",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"brokers", k.brokers,
		)
	}
	return k, nil
}

// Publish hands event to one member of every consumer group on topic. It fails
// fast with ErrSubscriberBacklog instead of blocking on a stalled member.
func (k *Kafka) Publish(ctx context.Context, topic string, event events.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.RLock()
	targets := make(map[string]chan events.Envelope, len(k.topics[topic]))
	for name, group := range k.topics[topic] {
		if len(group.members) == 0 {
			continue
		}
		targets[name] = group.members[memberIndex(event.PartitionKey, len(group.members))]
	}
	k.mu.RUnlock()

	for name, ch := range targets {
		select {
		case ch <- event:
		default:
			if k.logger != nil {
				k.logger.Warn("consumer group backlog full",
					"event", "kafka_publish_backlog",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"consumer_group", name,
					"event_id", event.EventID,
				)
			}
			return fmt.Errorf("%s/%s: %w", topic, name, ErrSubscriberBacklog)
		}
	}

	if k.logger != nil {
		k.logger.Info("event published",
			"event", "kafka_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
			"consumer_groups", len(targets),
		)
	}
	return nil
}

// Subscribe joins consumerGroup on topic until ctx is cancelled. Handler errors
// are logged; the event is not redelivered.
func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, events.Envelope) error,
) error {
	if consumerGroup == "" {
		return errors.New("consumer group is required")
	}
	ch := make(chan events.Envelope, subscriberBuffer)
	k.addMember(topic, consumerGroup, ch)

	go func() {
		for {
			select {
			case <-ctx.Done():
				k.removeMember(topic, consumerGroup, ch)
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil && k.logger != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (k *Kafka) addMember(topic string, name string, ch chan events.Envelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	groups := k.topics[topic]
	if groups == nil {
		groups = make(map[string]*consumerGroup)
		k.topics[topic] = groups
	}
	group := groups[name]
	if group == nil {
		group = &consumerGroup{}
		groups[name] = group
	}
	group.members = append(group.members, ch)
}

func (k *Kafka) removeMember(topic string, name string, target chan events.Envelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	group := k.topics[topic][name]
	if group == nil {
		return
	}
	filtered := make([]chan events.Envelope, 0, len(group.members))
	for _, member := range group.members {
		if member != target {
			filtered = append(filtered, member)
		}
	}
	if len(filtered) == 0 {
		delete(k.topics[topic], name)
		return
	}
	group.members = filtered
}

func memberIndex(partitionKey string, members int) int {
	if members <= 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(partitionKey))
	return int(h.Sum32() % uint32(members))
}
