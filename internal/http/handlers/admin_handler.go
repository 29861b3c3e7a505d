package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/assistant"
	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AdminHandler struct {
	Catalog   *services.CatalogService
	Orders    *services.OrderService
	Stats     *services.StatsService
	Assistant *assistant.Assistant
}

type productRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Specs       []string        `json:"specs"`
}

// GET /admin/stats
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	st, err := h.Stats.Dashboard(c.UserContext())
	if err != nil {
		return fail(c, "admin.stats", err)
	}
	return c.JSON(st)
}

func (h *AdminHandler) Products(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return fail(c, "admin.products.list", err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func textList(in []string, max int) ([]string, bool) {
	if len(in) > 10 {
		return nil, false
	}
	var out []string
	for _, raw := range in {
		v, ok := validate.Text(raw, max)
		if !ok {
			return nil, false
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, true
}

// SaveProduct creates a product, or replaces the one with the same id.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	created := strings.TrimSpace(req.ID) == ""
	id := uuid.NewString()
	if !created {
		var ok bool
		if id, ok = validate.ID(req.ID); !ok {
			return invalid(c, "id")
		}
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return invalid(c, "name")
	}
	category, ok := validate.Category(req.Category)
	if !ok {
		return invalid(c, "category")
	}
	if !validate.Price(req.Price) {
		return invalid(c, "price")
	}
	if !validate.Stock(req.Stock) {
		return invalid(c, "stock")
	}
	desc, ok := validate.Text(req.Description, validate.MaxText)
	if !ok {
		return invalid(c, "description")
	}
	image, ok := validate.Text(req.Image, 500)
	if !ok {
		return invalid(c, "image")
	}
	images, ok := textList(req.Images, 500)
	if !ok {
		return invalid(c, "images")
	}
	specs, ok := textList(req.Specs, 200)
	if !ok {
		return invalid(c, "specs")
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Description: desc,
		Price:       req.Price,
		Category:    category,
		Stock:       req.Stock,
		Image:       image,
		Images:      images,
		Specs:       specs,
	}
	if err := h.Catalog.Save(c.UserContext(), p); err != nil {
		return fail(c, "admin.products.save", err)
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": id, "created": created})
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(p)
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalid(c, "id")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return fail(c, "admin.products.delete", err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"ok": true})
}

type describeRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Describe drafts marketing copy for the product form. Name and category are
// required before asking the model.
func (h *AdminHandler) Describe(c *fiber.Ctx) error {
	var req describeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return invalid(c, "name")
	}
	category, ok := validate.Category(req.Category)
	if !ok {
		return invalid(c, "category")
	}
	desc := h.Assistant.GenerateDescription(c.UserContext(), name, category)
	return c.JSON(fiber.Map{"description": desc})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.All(c.UserContext())
	if err != nil {
		return fail(c, "admin.orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// POST /admin/orders/:id/status. Unknown ids are a no-op.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	if id == "" || req.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing id or status")
	}
	if err := h.Orders.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		return fail(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": string(req.Status)})
	return c.JSON(fiber.Map{"ok": true})
}
