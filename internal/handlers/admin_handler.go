package handlers

import (
	"bytes"
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"
)

// AdminHandler handles the admin-only surface: user account management,
// the store-wide audit trail, and the catalog export.
type AdminHandler struct {
	admin    *services.AdminService
	catalog  *services.CatalogService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService, catalog *services.CatalogService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		catalog:  catalog,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	adminRoutes := router.Group("/admin",
		middleware.AuthRequired(authService),
		middleware.RoleRequired(models.RoleAdmin))
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Post("/users", h.HandleCreateUser)
	adminRoutes.Put("/users/:id", h.HandleUpdateUser)
	adminRoutes.Post("/users/:id/deactivate", h.HandleDeactivateUser)
	adminRoutes.Get("/order-logs", h.HandleGetAllOrderLogs)
	adminRoutes.Get("/devices/export", h.HandleExportDevices)
}

// HandleListUsers retrieves every user account.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers()
	if err != nil {
		return respondError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleCreateUser provisions an account with an explicit role.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.admin.CreateUser(&user); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUserRequest is the request body for editing an account. Omitted
// fields leave the stored values unchanged.
type UpdateUserRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,oneof=customer staff admin"`
	Active *bool  `json:"active"`
}

// HandleUpdateUser modifies an account's email, role and active flag.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user request body: %v", err)
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

	user, err := h.admin.UpdateUser(c.Params("id"), req.Email, req.Role, req.Active)
	if err != nil {
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(user)
}

// HandleDeactivateUser marks an account inactive.
func (h *AdminHandler) HandleDeactivateUser(c *fiber.Ctx) error {
	if err := h.admin.DeactivateUser(c.Params("id")); err != nil {
		return respondError(c, err, "Could not deactivate user")
	}
	return c.JSON(fiber.Map{
		"message": "User deactivated",
	})
}

// HandleGetAllOrderLogs retrieves the store-wide order audit trail.
func (h *AdminHandler) HandleGetAllOrderLogs(c *fiber.Ctx) error {
	logs, err := h.orders.GetAllOrderLogs()
	if err != nil {
		return respondError(c, err, "Could not retrieve order logs")
	}
	return c.JSON(logs)
}

// HandleExportDevices downloads the device catalog as an Excel workbook.
func (h *AdminHandler) HandleExportDevices(c *fiber.Ctx) error {
	devices, err := h.catalog.GetAllDevices()
	if err != nil {
		return respondError(c, err, "Could not retrieve devices")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Devices")
	if err != nil {
		return respondError(c, err, "Could not create Excel sheet")
	}

	headerRow := sheet.AddRow()
	for _, header := range []string{"ID", "Name", "Brand", "Category", "Price", "Stock", "CreatedAt"} {
		headerRow.AddCell().SetValue(header)
	}

	for _, device := range devices {
		row := sheet.AddRow()
		row.AddCell().SetValue(device.ID)
		row.AddCell().SetValue(device.Name)
		row.AddCell().SetValue(device.Brand)
		row.AddCell().SetValue(device.Category)
		row.AddCell().SetValue(device.Price)
		row.AddCell().SetValue(device.Stock)
		row.AddCell().SetValue(device.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return respondError(c, err, "Could not write Excel file")
	}

	c.Set(fiber.HeaderContentDisposition, "attachment; filename=devices.xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
