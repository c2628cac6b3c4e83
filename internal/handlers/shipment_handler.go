package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ShipmentHandler handles HTTP requests for shipments.
type ShipmentHandler struct {
	service  *services.ShipmentService
	validate *validator.Validate
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service *services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the shipment routes with the Fiber app.
func (h *ShipmentHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	shipmentRoutes := router.Group("/shipments", middleware.OptionalAuth(authService))
	shipmentRoutes.Get("/", h.HandleGetShipments)
	shipmentRoutes.Get("/:id", h.HandleGetShipment)
	shipmentRoutes.Put("/:id", h.HandleUpdateShipment)
	shipmentRoutes.Post("/:id/finalise", h.HandleFinaliseShipment)
	shipmentRoutes.Delete("/:id", h.HandleDeleteShipment)
}

// HandleGetShipments lists the shipments of the caller's orders.
func (h *ShipmentHandler) HandleGetShipments(c *fiber.Ctx) error {
	ownerID := actorFromCtx(c).OwnerID()
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in or supply a guest token",
		})
	}

	shipments, err := h.service.GetShipmentsForOwner(ownerID)
	if err != nil {
		return respondError(c, err, "Could not retrieve shipments")
	}
	return c.JSON(shipments)
}

// HandleGetShipment retrieves one shipment the caller may see.
func (h *ShipmentHandler) HandleGetShipment(c *fiber.Ctx) error {
	shipment, err := h.service.GetShipment(c.Params("id"), actorFromCtx(c), isPrivileged(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve shipment")
	}
	return c.JSON(shipment)
}

// HandleUpdateShipment edits a shipment that is not yet finalised.
func (h *ShipmentHandler) HandleUpdateShipment(c *fiber.Ctx) error {
	var update services.ShipmentUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing shipment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	shipment, err := h.service.UpdateShipment(c.Params("id"), actorFromCtx(c), isPrivileged(c), update)
	if err != nil {
		return respondError(c, err, "Could not update shipment")
	}
	return c.JSON(shipment)
}

// HandleFinaliseShipment freezes a shipment against further edits.
func (h *ShipmentHandler) HandleFinaliseShipment(c *fiber.Ctx) error {
	shipment, err := h.service.FinaliseShipment(c.Params("id"), actorFromCtx(c), isPrivileged(c))
	if err != nil {
		return respondError(c, err, "Could not finalise shipment")
	}
	return c.JSON(shipment)
}

// HandleDeleteShipment removes a shipment that is not yet finalised.
func (h *ShipmentHandler) HandleDeleteShipment(c *fiber.Ctx) error {
	if err := h.service.DeleteShipment(c.Params("id"), actorFromCtx(c), isPrivileged(c)); err != nil {
		return respondError(c, err, "Could not delete shipment")
	}
	return c.JSON(fiber.Map{
		"message": "Shipment deleted",
	})
}
