package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches the pumps to an upgraded connection and blocks
// until the connection ends. sessionUserID is the identity proven by
// the handshake token.
func ServeWs(hub *Hub, relay *Relay, conn *websocket.Conn, sessionUserID uint) {
	client := NewClient(hub, conn, sessionUserID)

	go client.writePump()
	client.readPump(relay)
}
