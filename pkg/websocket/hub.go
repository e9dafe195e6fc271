package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

// Hub fans live messages out to dashboards watching an ambulance. Each
// ambulance id is a room; a client sits in exactly one room.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
	done       chan struct{}
	log        *logger.Logger
}

// Message types pushed to dashboards.
const (
	MessageWelcome  = "welcome"
	MessageLocation = "location_update"
	MessageTrip     = "trip_update"
)

type Message struct {
	Type        string          `json:"type"`
	AmbulanceID string          `json:"ambulanceId"`
	Timestamp   int64           `json:"timestamp"`
	Data        json.RawMessage `json:"data,omitempty"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.sendToRoom(message)
		}
	}
}

// Publish queues data for everyone watching ambulanceID. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) Publish(ambulanceID, messageType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	msg := &Message{
		Type:        messageType,
		AmbulanceID: ambulanceID,
		Timestamp:   getCurrentTimestamp(),
		Data:        payload,
	}

	select {
	case h.broadcast <- msg:
		return nil
	default:
		h.log.WithAmbulanceID(ambulanceID).Warn("websocket broadcast queue full, dropping message")
		return nil
	}
}

// Register adds client to its ambulance room. It returns false when the hub
// has stopped or ctx ends first.
func (h *Hub) Register(ctx context.Context, client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of dashboards watching ambulanceID.
func (h *Hub) ClientCount(ambulanceID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[ambulanceID])
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	if h.rooms[client.AmbulanceID] == nil {
		h.rooms[client.AmbulanceID] = make(map[*Client]bool)
	}
	h.rooms[client.AmbulanceID][client] = true
	h.log.WithAmbulanceID(client.AmbulanceID).Debug("dashboard connected")

	h.sendToClient(client, &Message{
		Type:        MessageWelcome,
		AmbulanceID: client.AmbulanceID,
		Timestamp:   getCurrentTimestamp(),
	})
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.removeClient(client)
}

func (h *Hub) sendToRoom(message *Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.rooms[message.AmbulanceID] {
		h.sendToClient(client, message)
	}
}

// sendToClient drops a client whose buffer is full. Callers hold the lock.
func (h *Hub) sendToClient(client *Client, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.WithError(err).Error("failed to encode websocket message")
		return
	}

	select {
	case client.send <- data:
	default:
		h.removeClient(client)
	}
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if room, exists := h.rooms[client.AmbulanceID]; exists {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.AmbulanceID)
		}
	}
	h.log.WithAmbulanceID(client.AmbulanceID).Debug("dashboard disconnected")
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		h.removeClient(client)
	}
}

func getCurrentTimestamp() int64 {
	return time.Now().UnixMilli()
}
