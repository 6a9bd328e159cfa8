package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	sendBufferSize = 256
)

type channelState int

const (
	stateUnauthenticated channelState = iota
	stateAuthenticated
	stateClosed
)

// Client is a middleman between a websocket connection and the hub. A
// fresh client starts unauthenticated; it only reaches the hub once an
// auth frame has been accepted.
type Client struct {
	ID uuid.UUID

	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Identity carried by the handshake token. The auth frame must
	// claim the same user.
	SessionUserID uint

	// Identity bound in the hub. Zero until authenticated.
	UserID uint

	// Buffered channel of outbound frames.
	Send chan []byte

	state channelState

	sendMu sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, sessionUserID uint) *Client {
	return &Client{
		ID:            uuid.New(),
		Hub:           hub,
		Conn:          conn,
		SessionUserID: sessionUserID,
		Send:          make(chan []byte, sendBufferSize),
	}
}

// enqueue offers a frame to the write pump without blocking. Returns
// false when the channel is closed or the buffer is full.
func (c *Client) enqueue(payload []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// closeSend shuts the outbound channel exactly once. The write pump
// reacts by sending a close frame and tearing the connection down.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// readPump pumps frames from the websocket connection into the relay.
func (c *Client) readPump(relay *Relay) {
	defer func() {
		relay.HandleClose(c)
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
				c.Hub.logger.Warn("Chat", "Unexpected close", map[string]interface{}{
					"channel_id": c.ID,
					"error":      err.Error(),
				})
			}
			break
		}
		relay.HandleFrame(c, data)
	}
}

// writePump pumps frames from the send channel to the websocket
// connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

			// Drain frames queued behind the one just written.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				if err := c.Conn.WriteMessage(websocket.TextMessage, <-c.Send); err != nil {
					return
				}
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
