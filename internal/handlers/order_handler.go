package handlers

import (
	"log"

	"devicestore/internal/middleware"
	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and their audit trails.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	orderRoutes := router.Group("/orders", middleware.OptionalAuth(authService))
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Put("/:id/items", h.HandleUpdateOrderItems)
	orderRoutes.Get("/:id/logs", h.HandleGetOrderLogs)

	router.Patch("/orders/:id/status",
		middleware.AuthRequired(authService),
		middleware.RoleRequired(models.RoleStaff, models.RoleAdmin),
		h.HandleSetOrderStatus)
}

// HandleGetOrders lists the caller's orders. Staff and admins see every
// order in the store.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	if isPrivileged(c) {
		orders, err := h.service.GetAllOrders()
		if err != nil {
			return respondError(c, err, "Could not retrieve orders")
		}
		return c.JSON(orders)
	}

	ownerID := actorFromCtx(c).OwnerID()
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in or supply a guest token",
		})
	}
	orders, err := h.service.GetOrdersForOwner(ownerID)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves one order the caller owns or may administer.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"), actorFromCtx(c), isPrivileged(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels a placed order and restores its stock.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	if err := h.service.CancelOrder(c.Params("id"), actorFromCtx(c), metaFromCtx(c)); err != nil {
		return respondError(c, err, "Could not cancel order")
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled",
	})
}

// UpdateOrderItemsRequest is the request body for editing line items.
type UpdateOrderItemsRequest struct {
	Changes []services.ItemChange `json:"changes" validate:"required,min=1,dive"`
}

// HandleUpdateOrderItems edits line-item quantities on a placed order.
// The response itemizes which edits were applied and which rejected.
func (h *OrderHandler) HandleUpdateOrderItems(c *fiber.Ctx) error {
	var req UpdateOrderItemsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order items request body: %v", err)
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

	results, err := h.service.UpdateOrderItems(c.Params("id"), actorFromCtx(c), req.Changes, metaFromCtx(c))
	if err != nil {
		return respondError(c, err, "Could not update order items")
	}
	return c.JSON(fiber.Map{
		"results": results,
	})
}

// HandleGetOrderLogs retrieves the audit trail for one order.
func (h *OrderHandler) HandleGetOrderLogs(c *fiber.Ctx) error {
	logs, err := h.service.GetOrderLogs(c.Params("id"), actorFromCtx(c), isPrivileged(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve order logs")
	}
	return c.JSON(logs)
}

// SetOrderStatusRequest is the request body for the staff status change.
type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleSetOrderStatus performs the staff fulfillment transition.
func (h *OrderHandler) HandleSetOrderStatus(c *fiber.Ctx) error {
	var req SetOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status request body: %v", err)
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

	staffUserID, _ := c.Locals("user_id").(string)
	if err := h.service.SetOrderStatus(c.Params("id"), req.Status, staffUserID, metaFromCtx(c)); err != nil {
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
	})
}
