package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. It blocks until the
// connection closes.
func ServeWs(hub *Hub, dispatcher *Dispatcher, c *websocket.Conn) {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		ID:         uuid.New(),
		Send:       make(chan []byte, 256),
		dispatcher: dispatcher,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
