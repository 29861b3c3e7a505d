package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "storefront/internal/log"
)

const CSRFHeader = "X-Csrf-Token"

// CSRF checks the token header on unsafe methods against the csrf_ cookie
// handed out on the first safe request.
func CSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Expiration:     time.Hour,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"header": c.Get(CSRFHeader) != ""})
			return jsonError(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	})
}

func loginLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 5
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return jsonError(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	})
}

// Mount registers the JSON API under /api/v1. AttachUser must run before it.
func Mount(app *fiber.App, d *Deps) {
	api := app.Group("/api/v1")

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/featured", d.ProductHandler.Featured)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/categories", d.CategoryHandler.List)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Delete("/cart/:productId", d.CartHandler.Remove)

	api.Post("/auth/login", loginLimiter(d.LoginMax), d.AuthHandler.Login)
	api.Post("/auth/register", loginLimiter(d.LoginMax), d.AuthHandler.Register)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/auth/me", d.AuthHandler.Me)

	api.Post("/checkout", RequireUser(), d.OrderHandler.Place)
	api.Get("/orders", RequireUser(), d.OrderHandler.History)

	api.Post("/assistant/chat", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), d.AssistantHandler.Chat)

	admin := api.Group("/admin", RequireAdmin())
	admin.Get("/stats", d.AdminHandler.Dashboard)
	admin.Get("/products", d.AdminHandler.Products)
	admin.Post("/products", d.AdminHandler.SaveProduct)
	admin.Post("/products/describe", d.AdminHandler.Describe)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
	admin.Get("/orders", d.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
}
