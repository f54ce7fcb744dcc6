package network

import (
	"log/slog"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client is the server-side representation of one connected player. It
// bundles the websocket connection with its outbound queue; the Hub and
// the game logic never write to the connection directly.
type Client struct {
	conn *websocket.Conn
	hub  *Hub

	// Buffered so the Hub does not block on a slow consumer.
	send chan Message

	logger *slog.Logger
}

// Conn exposes the underlying net.Conn, mainly for the remote address.
func (c *Client) Conn() net.Conn {
	return c.conn.UnderlyingConn()
}

// Send returns the outbound channel for this client. Writing a Message
// to it is the only concurrency-safe way to reach the peer.
func (c *Client) Send() chan<- Message {
	return c.send
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("unexpected close", "remote", c.conn.RemoteAddr(), "error", err)
			}
			break
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop pumps messages from the send channel to the websocket and
// keeps the connection alive with periodic pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The Hub closed the channel: the client was unregistered.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Warn("write failed", "remote", c.conn.RemoteAddr(), "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
