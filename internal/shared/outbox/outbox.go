package outbox

import "time"

const (
	StatusPending = "pending"
	StatusSent    = "sent"
)

// Message is an outbox row persisted inside the same unit of work as the state
// change it describes. The relay reads pending rows and publishes them.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	Status       string
	CreatedAt    time.Time
}
