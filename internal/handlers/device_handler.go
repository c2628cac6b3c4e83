package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DeviceHandler handles HTTP requests for the device catalog. Reads are
// public; writes are staff-only.
type DeviceHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(service *services.CatalogService) *DeviceHandler {
	return &DeviceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. staffOnly wraps the write
// routes with the auth and role middleware.
func (h *DeviceHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	deviceRoutes := router.Group("/devices")
	deviceRoutes.Get("/", h.HandleGetDevices)
	deviceRoutes.Get("/:id", h.HandleGetDeviceByID)

	staffOnly := deviceRoutes.Group("",
		middleware.AuthRequired(authService),
		middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	staffOnly.Post("/", h.HandleCreateDevice)
	staffOnly.Put("/:id", h.HandleUpdateDevice)
	staffOnly.Delete("/:id", h.HandleDeleteDevice)
}

// HandleGetDevices retrieves the full catalog.
func (h *DeviceHandler) HandleGetDevices(c *fiber.Ctx) error {
	devices, err := h.service.GetAllDevices()
	if err != nil {
		return respondError(c, err, "Could not retrieve devices")
	}
	return c.JSON(devices)
}

// HandleGetDeviceByID retrieves a single device.
func (h *DeviceHandler) HandleGetDeviceByID(c *fiber.Ctx) error {
	device, err := h.service.GetDeviceByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve device")
	}
	return c.JSON(device)
}

// HandleCreateDevice creates a new catalog entry.
func (h *DeviceHandler) HandleCreateDevice(c *fiber.Ctx) error {
	var device models.Device
	if err := c.BodyParser(&device); err != nil {
		log.Printf("Error parsing device request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(device); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateDevice(&device); err != nil {
		return respondError(c, err, "Could not create device")
	}
	return c.Status(fiber.StatusCreated).JSON(device)
}

// HandleUpdateDevice updates an existing catalog entry.
func (h *DeviceHandler) HandleUpdateDevice(c *fiber.Ctx) error {
	var device models.Device
	if err := c.BodyParser(&device); err != nil {
		log.Printf("Error parsing device request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	device.ID = c.Params("id")

	if err := h.validate.Struct(device); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.UpdateDevice(c.Context(), &device); err != nil {
		return respondError(c, err, "Could not update device")
	}
	return c.JSON(device)
}

// HandleDeleteDevice removes a catalog entry.
func (h *DeviceHandler) HandleDeleteDevice(c *fiber.Ctx) error {
	if err := h.service.DeleteDevice(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete device")
	}
	return c.JSON(fiber.Map{
		"message": "Device deleted successfully",
	})
}
