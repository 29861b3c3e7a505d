package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

const sidCookie = "sid"

func setSID(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		setSID(c, sid)
	}
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// AttachUser puts the session's user into Locals when there is one.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			u, err := auth.CurrentUser(c.UserContext(), sid)
			if err != nil {
				applog.Error(c, "session.load.fail", err, nil)
			} else if u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return jsonError(c, fiber.StatusUnauthorized, "Please log in to continue")
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return jsonError(c, fiber.StatusUnauthorized, "Please log in to continue")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"role": string(u.Role)})
			return jsonError(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}
