// Package ws pushes work order events to connected dashboard clients.
package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is one work order notification pushed to dashboards.
type Event struct {
	Type         string    `json:"type"` // work_order.created, work_order.status_changed
	TicketNumber string    `json:"ticket_number"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	clients map[*Client]bool

	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run processes register/unregister/broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish serializes the event and hands it to the broadcast loop. A hub
// that was never started drops events rather than blocking the caller.
func (h *Hub) Publish(evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
