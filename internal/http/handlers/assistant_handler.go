package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/assistant"
	"storefront/internal/validate"
)

type AssistantHandler struct {
	Assistant *assistant.Assistant
}

type chatRequest struct {
	Message string `json:"message"`
	Page    string `json:"page"`
}

// POST /api/v1/assistant/chat. The reply is always 200; model failures come
// back as a fallback sentence.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	msg, ok := validate.Text(req.Message, validate.MaxMessage)
	if !ok || msg == "" {
		return invalid(c, "message")
	}
	page, ok := validate.Text(req.Page, 200)
	if !ok {
		return invalid(c, "page")
	}
	reply := h.Assistant.Chat(c.UserContext(), msg, page)
	return c.JSON(fiber.Map{"reply": strings.TrimSpace(reply)})
}
