package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// RequireUpgrade rejects plain HTTP requests on websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// EventFeed streams the live feed of one event (payments settled, check-ins) to a websocket client.
func (h *Handler) EventFeed(c *websocket.Conn) {
	eventId := c.Params("eventId")
	defer c.Close()

	if h.feed == nil {
		c.WriteJSON(map[string]string{"error": "live feed disabled"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.feed.Subscribe(ctx, eventId)
	defer pubsub.Close()

	// reader loop only notices the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Warnf("live feed for event %s: %v", eventId, err)
				return
			}
		}
	}
}
