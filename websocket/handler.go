// websocket/handler.go
package websocket

import (
	"workforce-analyzer-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WsHandler manages WebSocket requests and connections
type WsHandler struct {
	hub *Hub
}

// NewWsHandler creates a new WebSocket handler instance
func NewWsHandler(hub *Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// HandleWebSocket upgrades dashboard connections that listen for analysis
// progress events.
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.New(),
			Conn: conn,
			Hub:  h.hub,
			Send: make(chan WebSocketMessage, 16),
		}
		h.hub.register <- client
		config.Logger.Info("Progress listener connected", zap.String("clientID", client.ID.String()))

		defer func() {
			h.hub.unregister <- client
			conn.Close()
		}()

		// Writer: forward hub messages until the send channel closes.
		go func() {
			for message := range client.Send {
				if err := conn.WriteJSON(message); err != nil {
					config.Logger.Warn("Progress write failed",
						zap.String("clientID", client.ID.String()),
						zap.Error(err),
					)
					return
				}
			}
		}()

		// Reader: progress is one-way, but reading drains control frames
		// and detects disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})(c)
}
