package realtime

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeGuard menolak request non-websocket sebelum handler WS.
func UpgradeGuard(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WSHandler mengirim setiap Event ke client; client cukup fetch ulang data halamannya.
// Client lambat kehilangan event (buffer penuh), bukan memblok Publish.
func (h *Hub) WSHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		send := make(chan Event, 32)
		unsubscribe := h.Subscribe(Wildcard, func(ev Event) {
			select {
			case send <- ev:
			default:
			}
		})
		defer unsubscribe()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case ev := <-send:
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("[REALTIME] ws write gagal: %v", err)
					return
				}
			}
		}
	})
}
