package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedStream upgrades to a websocket and streams live feed events until the
// client disconnects.
func (s *Server) FeedStream(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID := currentUserID(c)

	return websocket.New(func(conn *websocket.Conn) {
		client, err := s.hub.Register(userID, conn)
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
			_ = conn.Close()
			return
		}
		defer func() {
			s.hub.Unregister(client)
			_ = conn.Close()
		}()

		go client.WritePump()
		client.ReadPump()
	})(c)
}
