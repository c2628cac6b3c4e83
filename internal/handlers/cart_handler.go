package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CartHandler handles HTTP requests for the cart. Routes run under
// OptionalAuth: authenticated users and guest sessions both have carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	cartRoutes := router.Group("/cart", middleware.OptionalAuth(authService))
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:id", h.HandleRemoveFromCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddToCartRequest is the request body for adding a line to the cart.
type AddToCartRequest struct {
	DeviceID string `json:"device_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// HandleGetCart retrieves the caller's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	ownerID := actorFromCtx(c).OwnerID()
	if ownerID == "" {
		return c.JSON([]models.CartItem{})
	}

	items, err := h.service.GetCart(ownerID)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(items)
}

// HandleAddToCart reserves stock for the caller. A first anonymous add
// mints a guest token, returned in the X-Guest-Token response header for
// the client to present on subsequent requests.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	actor := actorFromCtx(c)
	ownerID := actor.OwnerID()
	if actor.UserID == "" {
		if ownerID == "" {
			ownerID = uuid.New().String()
		}
		c.Set(middleware.GuestTokenHeader, ownerID)
	}

	item, err := h.service.AddToCart(ownerID, req.DeviceID, req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveFromCart restores a line's reserved stock and deletes it.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	ownerID := actorFromCtx(c).OwnerID()
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in or supply a guest token",
		})
	}

	if err := h.service.RemoveFromCart(ownerID, c.Params("id")); err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	return c.JSON(fiber.Map{
		"message": "Cart item removed",
	})
}

// HandleClearCart deletes every line in the caller's cart. Reserved stock
// for the removed lines is restored one line at a time.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	ownerID := actorFromCtx(c).OwnerID()
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in or supply a guest token",
		})
	}

	items, err := h.service.GetCart(ownerID)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	for _, item := range items {
		if err := h.service.RemoveFromCart(ownerID, item.ID); err != nil {
			return respondError(c, err, "Could not clear cart")
		}
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
