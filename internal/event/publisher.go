package event

import "context"

// Publisher sends one event to a single topic, keyed for per-entity ordering.
// Implemented by the Kafka producer; tests substitute in-memory recorders.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
