package realtime

import (
	"context"
)

// Sink consumes the normalized notification stream and pushes each raw event
// to the broadcast hub. Independent of the email sink: its own consumer
// group, its own failures.
type Sink struct {
	hub *Hub
}

func NewSink(hub *Hub) *Sink {
	return &Sink{hub: hub}
}

// HandleNotification forwards the raw event bytes to connected clients.
// Always returns nil; broadcast is best effort.
func (s *Sink) HandleNotification(ctx context.Context, key, value []byte) error {
	s.hub.Broadcast(value)
	return nil
}
