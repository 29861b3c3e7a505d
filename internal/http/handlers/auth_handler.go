package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// rotate hands the caller a new sid after sign in so a session id planted
// before authentication is never the authenticated one. The guest cart comes
// along.
func (h *AuthHandler) rotate(c *fiber.Ctx, sid string) error {
	if old := c.Cookies(sidCookie); old != "" {
		if err := h.Auth.Rotate(c.UserContext(), old, sid); err != nil {
			return err
		}
	}
	setSID(c, sid)
	return nil
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	email, ok := validate.Login(req.Email)
	if !ok || !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	sid := uuid.NewString()
	u, err := h.Auth.Login(c.UserContext(), sid, email, req.Password)
	if err != nil {
		return fail(c, "auth.login.fail", err)
	}
	if err := h.rotate(c, sid); err != nil {
		return fail(c, "auth.login.rotate", err)
	}
	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"user": u})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return invalid(c, "name")
	}
	email, ok := validate.Login(req.Email)
	if !ok {
		return invalid(c, "email")
	}
	if !validate.NewPassword(req.Password) {
		return invalid(c, "password")
	}

	sid := uuid.NewString()
	u, err := h.Auth.Register(c.UserContext(), sid, name, email, req.Password)
	if err != nil {
		return fail(c, "auth.register.fail", err)
	}
	if err := h.rotate(c, sid); err != nil {
		return fail(c, "auth.register.rotate", err)
	}
	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sidCookie)
	if sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			return fail(c, "auth.logout", err)
		}
	}
	expireSID(c)
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Me reports the session's user, or null for a guest.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c)})
}
