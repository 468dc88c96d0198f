package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected user
type Client struct {
	UserID uint
	Role   string
	Conn   *websocket.Conn
	Send   chan *Message
	Hub    *Hub

	closeOnce sync.Once
}

// Hub maintains the set of active clients and pushes notification events to
// them. Delivery is best-effort: a disconnected user simply falls back to
// polling.
type Hub struct {
	clients    map[uint]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *Message
	mu         sync.RWMutex
}

// Message is the wire format pushed to clients.
type Message struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *Message, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if existing, ok := h.clients[client.UserID]; ok {
				existing.Close()
			}
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 User %d connected (%s)", client.UserID, client.Role)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 User %d disconnected", client.UserID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, client := range h.clients {
		select {
		case client.Send <- message:
		default:
			log.Printf("⚠️ Send buffer full for user %d, dropping message", userID)
		}
	}
}

// SendToUser pushes a message to one connected user. A miss is not an error.
func (h *Hub) SendToUser(userID uint, message *Message) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		log.Printf("⚠️ Send buffer full for user %d, dropping message", userID)
	}
}

// IsUserConnected reports whether a user currently has an open socket.
func (h *Hub) IsUserConnected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// ConnectedUsers returns the ids of currently connected users.
func (h *Hub) ConnectedUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}
