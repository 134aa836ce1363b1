package handler

import (
	"election-assistant-be/internal/pkg/logger"
	internalWS "election-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatSocketHandler serves the streaming chat endpoint. Each socket is
// keyed by the client address, the same as POST /chat.
type ChatSocketHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewChatSocketHandler(hub *internalWS.Hub, log logger.ILogger) *ChatSocketHandler {
	return &ChatSocketHandler{hub: hub, logger: log}
}

func (h *ChatSocketHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/chat", h.ServeWs)
}

func (h *ChatSocketHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID := c.IP()
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatSocketHandler", "Chat socket opened", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("ChatSocketHandler", "Chat socket closed", map[string]interface{}{"user_id": userID})
	})(c)
}
