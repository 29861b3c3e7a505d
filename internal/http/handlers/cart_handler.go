package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), ensureSID(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return invalid(c, "productId")
	}
	qty, ok := validate.Qty(req.Quantity)
	if !ok {
		return invalid(c, "quantity")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), productID)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	if p == nil {
		return jsonError(c, fiber.StatusNotFound, "This item is no longer available")
	}
	cv, err := h.Cart.Add(c.UserContext(), sid, *p, qty)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return c.JSON(cv)
}

// DELETE /api/v1/cart/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return invalid(c, "productId")
	}
	cv, err := h.Cart.Remove(c.UserContext(), ensureSID(c), productID)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(c.UserContext(), sid); err != nil {
		return fail(c, "cart.clear", err)
	}
	cv, err := h.Cart.View(c.UserContext(), sid)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}
