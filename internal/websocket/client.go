package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

type inbound struct {
	Message string `json:"message"`
}

type outbound struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	// Connection identifier the chat session is keyed by
	UserID string

	// Buffered channel of outbound frames.
	Send chan []byte
}

// readPump answers each inbound frame in order. Frames from one socket
// never overlap, so a client cannot race itself on its own session.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			return
		}

		var out outbound
		var in inbound
		if err := json.Unmarshal(data, &in); err != nil {
			out.Error = "invalid frame, expected {\"message\": \"...\"}"
		} else if reply, err := c.Hub.chat(ctx, c.UserID, in.Message); err != nil {
			out.Error = "could not answer message"
			c.Hub.logger.Error("WebSocket", "Chat failed", map[string]interface{}{
				"user_id": c.UserID,
				"error":   err.Error(),
			})
		} else {
			out.Reply = reply
		}

		frame, _ := json.Marshal(out)
		if !c.deliver(ctx, frame) {
			return
		}
	}
}

// deliver queues frame for writePump. It gives up once ctx is done, which
// happens when writePump has stopped draining Send.
func (c *Client) deliver(ctx context.Context, frame []byte) bool {
	select {
	case c.Send <- frame:
		return true
	case <-ctx.Done():
		return false
	}
}

// writePump pumps frames from Send to the connection and keeps it alive
// with pings. It calls stop on exit so readPump does not wait on Send.
func (c *Client) writePump(stop context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
