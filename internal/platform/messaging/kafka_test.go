package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"provenance/internal/shared/events"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus, err := NewKafka([]string{"localhost:9092"}, nil)
	if err != nil {
		t.Fatalf("new kafka: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	if err := bus.Subscribe(ctx, "authenticity.events", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "authenticity.events", events.Envelope{EventID: "evt-1", EventType: "authenticity.pause_changed"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != "evt-1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestPublishWithoutSubscribersSucceeds(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new kafka: %v", err)
	}
	if err := bus.Publish(context.Background(), "unused", events.Envelope{EventID: "evt-2"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func groupSize(k *Kafka, topic string, consumerGroup string) int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if group := k.topics[topic][consumerGroup]; group != nil {
		return len(group.members)
	}
	return 0
}

func TestEachConsumerGroupReceivesEveryEventOnce(t *testing.T) {
	bus, _ := NewKafka(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type delivery struct {
		member  string
		eventID string
	}
	received := make(chan delivery, 64)
	subscribe := func(group string, member string) {
		t.Helper()
		err := bus.Subscribe(ctx, "authenticity.events", group, func(_ context.Context, event events.Envelope) error {
			received <- delivery{member: member, eventID: event.EventID}
			return nil
		})
		if err != nil {
			t.Fatalf("subscribe %s: %v", member, err)
		}
	}
	subscribe("audit", "audit-1")
	subscribe("audit", "audit-2")
	subscribe("analytics", "analytics-1")

	keys := []string{"0xaa", "0xbb", "0xaa", "0xcc", "0xaa"}
	for i, key := range keys {
		envelope := events.Envelope{EventID: "evt-" + string(rune('a'+i)), PartitionKey: key}
		if err := bus.Publish(ctx, "authenticity.events", envelope); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	perGroup := map[string]int{}
	memberForKey := map[string]string{}
	for i := 0; i < len(keys)*2; i++ {
		select {
		case d := <-received:
			if d.member == "analytics-1" {
				perGroup["analytics"]++
				continue
			}
			perGroup["audit"]++
			key := keys[d.eventID[len(d.eventID)-1]-'a']
			if previous, ok := memberForKey[key]; ok && previous != d.member {
				t.Fatalf("partition key %s split across %s and %s", key, previous, d.member)
			}
			memberForKey[key] = d.member
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d deliveries", i)
		}
	}
	if perGroup["audit"] != len(keys) || perGroup["analytics"] != len(keys) {
		t.Fatalf("unexpected per-group deliveries: %v", perGroup)
	}
	select {
	case extra := <-received:
		t.Fatalf("unexpected extra delivery: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishReportsBacklogInsteadOfDropping(t *testing.T) {
	bus, _ := NewKafka(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	defer close(release)
	if err := bus.Subscribe(ctx, "authenticity.events", "audit", func(context.Context, events.Envelope) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	var err error
	for i := 0; i < subscriberBuffer+2 && err == nil; i++ {
		err = bus.Publish(ctx, "authenticity.events", events.Envelope{EventID: "evt"})
	}
	if !errors.Is(err, ErrSubscriberBacklog) {
		t.Fatalf("expected ErrSubscriberBacklog, got %v", err)
	}
}

func TestSubscribeLeavesGroupOnCancel(t *testing.T) {
	bus, _ := NewKafka(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	if err := bus.Subscribe(ctx, "authenticity.events", "audit", func(context.Context, events.Envelope) error { return nil }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := bus.Subscribe(context.Background(), "authenticity.events", "", nil); err == nil {
		t.Fatalf("expected error for empty consumer group")
	}
	if groupSize(bus, "authenticity.events", "audit") != 1 {
		t.Fatalf("expected one member")
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for groupSize(bus, "authenticity.events", "audit") != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("member never left the group")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
