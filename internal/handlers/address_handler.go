package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for delivery addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
// Addresses require a logged-in user; guest checkouts ship to a
// synthesized placeholder instead.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	addressRoutes := router.Group("/addresses", middleware.AuthRequired(authService))
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Get("/:id", h.HandleGetAddress)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleGetAddresses lists the caller's addresses, oldest first.
func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	addresses, err := h.service.GetAddresses(userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve addresses")
	}
	return c.JSON(addresses)
}

// HandleGetAddress retrieves one address owned by the caller.
func (h *AddressHandler) HandleGetAddress(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	address, err := h.service.GetAddress(c.Params("id"), userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve address")
	}
	return c.JSON(address)
}

// HandleCreateAddress stores a new address for the caller.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	address.UserID, _ = c.Locals("user_id").(string)

	if err := h.validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateAddress(&address); err != nil {
		return respondError(c, err, "Could not create address")
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleUpdateAddress modifies an address owned by the caller.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	var update models.Address
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID, _ := c.Locals("user_id").(string)
	update.UserID = userID

	if err := h.validate.Struct(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	address, err := h.service.UpdateAddress(c.Params("id"), userID, &update)
	if err != nil {
		return respondError(c, err, "Could not update address")
	}
	return c.JSON(address)
}

// HandleDeleteAddress removes an address owned by the caller.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if err := h.service.DeleteAddress(c.Params("id"), userID); err != nil {
		return respondError(c, err, "Could not delete address")
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted",
	})
}
