package handlers

import (
	"storefront/internal/assistant"
	"storefront/internal/services"
)

// Services is what the HTTP layer needs from the rest of the app.
type Services struct {
	Catalog   *services.CatalogService
	Carts     *services.CartService
	Auth      *services.AuthService
	Orders    *services.OrderService
	Stats     *services.StatsService
	Assistant *assistant.Assistant
}

type Deps struct {
	Auth             *services.AuthService
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	CartHandler      *CartHandler
	AuthHandler      *AuthHandler
	OrderHandler     *OrderHandler
	AssistantHandler *AssistantHandler
	AdminHandler     *AdminHandler

	// LoginMax caps login attempts per client per LoginWindow. Zero uses 5.
	LoginMax int
}

func NewDeps(s Services) *Deps {
	return &Deps{
		Auth:             s.Auth,
		ProductHandler:   &ProductHandler{Catalog: s.Catalog},
		CategoryHandler:  &CategoryHandler{Catalog: s.Catalog},
		CartHandler:      &CartHandler{Cart: s.Carts, Catalog: s.Catalog},
		AuthHandler:      &AuthHandler{Auth: s.Auth},
		OrderHandler:     &OrderHandler{Order: s.Orders},
		AssistantHandler: &AssistantHandler{Assistant: s.Assistant},
		AdminHandler:     &AdminHandler{Catalog: s.Catalog, Orders: s.Orders, Stats: s.Stats, Assistant: s.Assistant},
	}
}
