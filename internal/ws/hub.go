package ws

import (
	"encoding/json"

	"wolfpack/fitness-hub/internal/metrics"

	"go.uber.org/zap"
)

// broadcastMessage pairs an outbound frame with the sender it must be
// excluded from.
type broadcastMessage struct {
	senderID string
	payload  []byte
}

// Hub owns the connection registry. Register, unregister and broadcast all
// flow through its run loop, so the registry needs no lock.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage
	logger     *zap.Logger
}

// NewHub creates a hub. Run must be started before clients are served.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, 64),
		logger:     logger,
	}
}

// Run processes registry events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.id] = client
			metrics.WSConnections.Inc()
			h.logger.Info("client connected", zap.String("clientId", client.id))

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
				metrics.WSConnections.Dec()
				h.logger.Info("client disconnected", zap.String("clientId", client.id))
			}

		case msg := <-h.broadcast:
			for id, client := range h.clients {
				if id == msg.senderID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					// A client too slow to drain its buffer is dropped
					// rather than allowed to stall the feed.
					delete(h.clients, id)
					close(client.send)
					metrics.WSConnections.Dec()
					h.logger.Warn("client send buffer full, dropping", zap.String("clientId", id))
				}
			}
		}
	}
}

// relay validates the envelope shape just enough to route it. Unknown event
// types are logged and dropped; the channel never errors back to the
// sender.
func (h *Hub) relay(senderID string, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		metrics.WSDropped.Inc()
		h.logger.Warn("malformed channel message",
			zap.String("clientId", senderID),
			zap.Error(err))
		return
	}

	switch envelope.Type {
	case EventWorkoutUpdate, EventAchievementNotification:
		// The payload is relayed as-is; it was never checked against the
		// domain store.
		unverified := UnverifiedPayload{Type: envelope.Type, Data: envelope.Data}
		payload, err := unverified.Encode()
		if err != nil {
			metrics.WSDropped.Inc()
			return
		}
		metrics.WSMessages.WithLabelValues(envelope.Type).Inc()
		h.broadcast <- broadcastMessage{senderID: senderID, payload: payload}
	default:
		metrics.WSDropped.Inc()
		h.logger.Warn("unknown channel message type",
			zap.String("clientId", senderID),
			zap.String("type", envelope.Type))
	}
}
