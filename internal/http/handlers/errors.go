package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

const genericError = "Something went wrong. Please try again."

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ErrorHandler answers fiber errors with their own status and everything else
// with a generic 500 that does not leak internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return jsonError(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return jsonError(c, fiber.StatusInternalServerError, genericError)
}

// fail maps service errors to client statuses. Anything unknown is wrapped
// with action and handed to ErrorHandler.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrBadCreds):
		applog.Security(c, action, map[string]any{"reason": "bad_credentials"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrNotLoggedIn):
		return jsonError(c, fiber.StatusUnauthorized, "Please log in to continue")
	case errors.Is(err, services.ErrUserExists):
		applog.Security(c, action, map[string]any{"reason": "duplicate"})
		return jsonError(c, fiber.StatusConflict, "An account with that email already exists")
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrMissingAddress),
		errors.Is(err, services.ErrBadPayment),
		errors.Is(err, services.ErrBadStatus),
		errors.Is(err, services.ErrInvalidQty):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		applog.Error(c, action, err, nil)
		return jsonError(c, fiber.StatusServiceUnavailable, "Request timed out")
	}
	return fmt.Errorf("%s: %w", action, err)
}

func invalid(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return jsonError(c, fiber.StatusBadRequest, "invalid "+field)
}
