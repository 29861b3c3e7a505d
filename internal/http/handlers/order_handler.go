package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

// POST /api/v1/checkout
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	address, ok := validate.Address(req.ShippingAddress)
	if !ok {
		return invalid(c, "shippingAddress")
	}

	o, err := h.Order.Place(c.UserContext(), sid, address, req.PaymentMethod)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"total":    o.Total.StringFixed(2),
		"payment":  o.PaymentMethod,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return jsonError(c, fiber.StatusUnauthorized, "Please log in to continue")
	}
	orders, err := h.Order.History(c.UserContext(), u.ID)
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
