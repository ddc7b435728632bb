package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket
// connection attempts and that the board and client identifiers are present before
// allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		boardID := c.Params("boardId")
		if boardID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "board ID is required",
			})
		}

		// EnsureClientID runs before this middleware on the ws routes
		clientID := c.Locals("clientID")
		if clientID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		// Store these IDs in locals so they're available after the WebSocket upgrade,
		// since the connection context is different from the upgrade context.
		c.Locals("wsBoardID", boardID)
		c.Locals("wsClientID", clientID)

		return c.Next()
	}
}
