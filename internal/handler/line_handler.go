package handler

import (
	"ppe-inventory-ws/internal/notify"

	"github.com/gofiber/fiber/v2"
)

// LineHandler relays browser push requests to the LINE Messaging API so the
// channel token never reaches the client.
type LineHandler struct {
	notifier *notify.LineNotifier
}

func NewLineHandler(notifier *notify.LineNotifier) *LineHandler {
	return &LineHandler{notifier: notifier}
}

type lineRelayRequest struct {
	To       string           `json:"to"`
	Messages []notify.Message `json:"messages"`
}

// Relay forwards {to, messages} to the push API with the server's credential.
// Mounted with app.All so non-POST methods get a 405, like the original relay.
// POST /api/line
func (h *LineHandler) Relay(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(405).JSON(fiber.Map{"message": "Method Not Allowed"})
	}

	var req lineRelayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.notifier.Push(req.To, req.Messages); err != nil {
		// Upstream error body is carried inside the error message.
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
