package handlers

import (
	"errors"
	"fmt"
	"log"

	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses in one place.
// Validation and authorization problems surface with their details;
// anything unclassified is logged server-side and returned as a generic
// failure message.
func respondError(c *fiber.Ctx, err error, message string) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Reasons,
		})
	case errors.Is(err, models.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty",
		})
	case errors.Is(err, models.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Insufficient stock",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Operation not permitted in the current state",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have access to this resource",
		})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Resource not found",
		})
	default:
		log.Printf("Error: %s: %v", message, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
		})
	}
}

// validationMessages turns validator.ValidationErrors into the per-field
// message map returned to the client.
func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}

// actorFromCtx builds the caller identity from the auth middleware locals.
func actorFromCtx(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals("user_id").(string)
	guestToken, _ := c.Locals("guest_token").(string)
	return services.Actor{
		UserID:     userID,
		GuestToken: guestToken,
	}
}

// metaFromCtx captures the request metadata recorded with audit entries.
func metaFromCtx(c *fiber.Ctx) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

// isPrivileged reports whether the caller holds a staff or admin role.
func isPrivileged(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == models.RoleStaff || role == models.RoleAdmin
}
