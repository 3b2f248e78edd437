package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches the connection to the hub and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, caseID uuid.UUID) {
	client := NewClient(hub, c, caseID)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
