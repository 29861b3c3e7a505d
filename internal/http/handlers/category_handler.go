package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories, "All" first.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return fail(c, "catalog.categories", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}
