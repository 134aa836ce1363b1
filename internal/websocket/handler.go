package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs runs a chat socket until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, userID string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 16)}
	if !hub.add(client) {
		c.Close()
		return
	}

	go client.writePump(cancel)
	client.readPump(ctx)
}
