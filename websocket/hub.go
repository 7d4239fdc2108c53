// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeProgress MessageType = "ANALYSIS_PROGRESS"
	MessageTypeComplete MessageType = "ANALYSIS_COMPLETE"
	MessageTypeError    MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ProgressPayload reports chunked-ingest progress for one upload. Total is
// -1 until the sheet is exhausted.
type ProgressPayload struct {
	UploadID string `json:"uploadId"`
	RowsRead int    `json:"rowsRead"`
	Total    int    `json:"total"`
}

type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Hub  *Hub
	Send chan WebSocketMessage
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(message WebSocketMessage) {
	h.broadcast <- message
}

// BroadcastProgress publishes ingest progress for an upload.
func (h *Hub) BroadcastProgress(uploadID string, rowsRead, total int) {
	h.Broadcast(WebSocketMessage{
		Type: MessageTypeProgress,
		Payload: ProgressPayload{
			UploadID: uploadID,
			RowsRead: rowsRead,
			Total:    total,
		},
		Timestamp: time.Now(),
	})
}

// broadcastToAll sends a message to all connected clients
func (h *Hub) broadcastToAll(message WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
