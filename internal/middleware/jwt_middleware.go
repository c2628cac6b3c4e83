package middleware

import (
	"log"
	"strings"

	"devicestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GuestTokenHeader carries the anonymous-session identifier for guest
// carts and orders.
const GuestTokenHeader = "X-Guest-Token"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("user_id", claims["user_id"])
		c.Locals("username", claims["username"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}

// OptionalAuth resolves the caller's identity without requiring one: a
// valid bearer token sets the user locals, otherwise a guest token from
// the request header is picked up. Used by the cart and checkout routes,
// which serve anonymous sessions too.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") != "" {
			claims, err := bearerClaims(c, authService)
			if err != nil {
				// A presented but invalid token is still rejected.
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": err.Error(),
				})
			}
			c.Locals("user_id", claims["user_id"])
			c.Locals("username", claims["username"])
			c.Locals("role", claims["role"])
		} else if guest := c.Get(GuestTokenHeader); guest != "" {
			c.Locals("guest_token", guest)
		}
		return c.Next()
	}
}

// RoleRequired gates a route to callers whose JWT role claim is one of
// the given roles. Must be chained after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient role for this resource",
		})
	}
}

// bearerClaims extracts and validates the Authorization bearer token.
func bearerClaims(c *fiber.Ctx, authService *services.AuthService) (map[string]interface{}, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		log.Printf("JWT validation failed: %v", err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}
