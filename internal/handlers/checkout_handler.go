package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles checkout and payment history requests.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	router.Post("/checkout", middleware.OptionalAuth(authService), h.HandleCheckout)
	router.Get("/payments", middleware.AuthRequired(authService), h.HandleGetPayments)
}

// HandleCheckout turns the caller's cart into a placed order with a
// settled payment and reports the post-payment workflow outcome.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var form services.PaymentForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	actor := actorFromCtx(c)
	if actor.OwnerID() == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in or supply a guest token",
		})
	}

	result, err := h.service.Checkout(actor, form, metaFromCtx(c))
	if err != nil {
		return respondError(c, err, "Checkout failed")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleGetPayments retrieves the authenticated user's payment history.
func (h *CheckoutHandler) HandleGetPayments(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	payments, err := h.service.GetPaymentsForUser(userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve payments")
	}
	return c.JSON(payments)
}
