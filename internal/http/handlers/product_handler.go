package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products?q=&category=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := ""
	if raw := c.Query("q"); strings.TrimSpace(raw) != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return jsonError(c, fiber.StatusBadRequest, "Enter a valid keyword (letters/numbers only)")
		}
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.Category(category); !ok {
			return invalid(c, "category")
		}
	}
	products, err := h.Catalog.Search(c.UserContext(), q, category)
	if err != nil {
		return fail(c, "catalog.search", err)
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	p, err := h.Catalog.Featured(c.UserContext())
	if err != nil {
		return fail(c, "catalog.featured", err)
	}
	if p == nil {
		return jsonError(c, fiber.StatusNotFound, "No products available")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalid(c, "id")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "catalog.get", err)
	}
	if p == nil {
		return jsonError(c, fiber.StatusNotFound, "This item is no longer available")
	}
	return c.JSON(p)
}
