package realtime

import (
	"context"

	"github.com/example/supplychain-events/internal/metrics"
)

// Hub fans one notification feed out to every connected websocket client.
// Best effort only: clients that cannot keep up are disconnected, and there
// is no replay for clients that connect later.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set; all membership changes and broadcasts go through
// this loop, so no locking is needed elsewhere.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			metrics.BroadcastClients.Set(0)
			return
		case client := <-h.register:
			h.clients[client] = true
			metrics.BroadcastClients.Set(float64(len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.BroadcastClients.Set(float64(len(h.clients)))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than block the feed.
					metrics.BroadcastsDropped.Inc()
					delete(h.clients, client)
					close(client.send)
				}
			}
			metrics.BroadcastClients.Set(float64(len(h.clients)))
		}
	}
}

// Broadcast queues a message for every connected client. Non-blocking: when
// the feed buffer is full the message is dropped.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		metrics.BroadcastsDropped.Inc()
	}
}
