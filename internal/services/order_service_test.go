package services_test

import (
	"testing"

	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/stretchr/testify/assert"
)

func newOrderService(env *checkoutEnv) *services.OrderService {
	return services.NewOrderService(env.orderRepo, env.deviceRepo, env.logRepo)
}

func TestOrderService_GetOrderOwnership(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	owner := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, owner)

	// The owner sees it.
	got, err := service.GetOrder(order.ID, owner, false)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// A stranger does not.
	_, err = service.GetOrder(order.ID, services.Actor{UserID: "user-2"}, false)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Staff bypass the ownership check.
	got, err = service.GetOrder(order.ID, services.Actor{UserID: "staff-1"}, true)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Missing order.
	_, err = service.GetOrder("no-such-order", owner, false)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderService_GuestTokenOwnership(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	guest := services.Actor{GuestToken: "guest-abc"}
	order := placeOrder(t, env, guest)

	got, err := service.GetOrder(order.ID, guest, false)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = service.GetOrder(order.ID, services.Actor{GuestToken: "guest-other"}, false)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestOrderService_CancelOrderRestoresStock(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}

	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 10)
	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 4)
	assert.NoError(t, err)

	order := &models.Order{
		UserID: actor.UserID,
		Items: []models.OrderItem{
			{DeviceID: device.ID, Quantity: 4, UnitPrice: 100.00},
		},
		TotalAmount: 400.00,
		Status:      models.OrderPlaced,
	}
	assert.NoError(t, env.orderRepo.CreateWithPayment(order, &models.Payment{UserID: actor.UserID, Amount: 400.00}))

	assert.NoError(t, service.CancelOrder(order.ID, actor, models.RequestMeta{}))

	stored, _ := env.orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderCancelled, stored.Status)

	// The reserved units came back.
	dev, _ := env.deviceRepo.GetByID(device.ID)
	assert.Equal(t, 10, dev.Stock)

	logs, _ := env.logRepo.GetByOrderID(order.ID)
	assert.Len(t, logs, 1)
	assert.Equal(t, models.ActionOrderCancelled, logs[0].Action)
}

func TestOrderService_CancelOrderStateMachine(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	// Only the owner may cancel.
	err := service.CancelOrder(order.ID, services.Actor{UserID: "user-2"}, models.RequestMeta{})
	assert.ErrorIs(t, err, models.ErrForbidden)

	// A confirmed order cannot be cancelled.
	assert.NoError(t, env.orderRepo.UpdateStatus(order.ID, models.OrderConfirmed))
	err = service.CancelOrder(order.ID, actor, models.RequestMeta{})
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestOrderService_UpdateOrderItems(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}

	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 5)
	order := &models.Order{
		UserID: actor.UserID,
		Items: []models.OrderItem{
			{DeviceID: device.ID, Quantity: 3, UnitPrice: 100.00},
		},
		TotalAmount: 300.00,
		Status:      models.OrderPlaced,
	}
	assert.NoError(t, env.orderRepo.CreateWithPayment(order, &models.Payment{UserID: actor.UserID, Amount: 300.00}))
	itemID := order.Items[0].ID

	// Reducing the quantity returns the difference to stock.
	results, err := service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: itemID, Quantity: 1},
	}, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, results[0].Applied)

	dev, _ := env.deviceRepo.GetByID(device.ID)
	assert.Equal(t, 7, dev.Stock)
	stored, _ := env.orderRepo.GetByID(order.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)

	// Raising it past available stock is rejected per item.
	results, err = service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: itemID, Quantity: 20},
	}, models.RequestMeta{})
	assert.NoError(t, err)
	assert.False(t, results[0].Applied)
	assert.Equal(t, models.ErrInsufficientStock.Error(), results[0].Reason)

	// Unknown items are reported, not fatal.
	results, err = service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: "no-such-item", Quantity: 2},
		{ItemID: itemID, Quantity: 2},
	}, models.RequestMeta{})
	assert.NoError(t, err)
	assert.False(t, results[0].Applied)
	assert.True(t, results[1].Applied)
}

func TestOrderService_UpdateOrderItemsAuditsOnlyAppliedEdits(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}

	device := seedDevice(t, env.deviceRepo, "Router", 100.00, 5)
	order := &models.Order{
		UserID: actor.UserID,
		Items: []models.OrderItem{
			{DeviceID: device.ID, Quantity: 3, UnitPrice: 100.00},
		},
		TotalAmount: 300.00,
		Status:      models.OrderPlaced,
	}
	assert.NoError(t, env.orderRepo.CreateWithPayment(order, &models.Payment{UserID: actor.UserID, Amount: 300.00}))
	itemID := order.Items[0].ID

	// A batch where every change is rejected leaves no trace in the trail.
	results, err := service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: "no-such-item", Quantity: 2},
		{ItemID: itemID, Quantity: 0},
	}, models.RequestMeta{})
	assert.NoError(t, err)
	assert.False(t, results[0].Applied)
	assert.False(t, results[1].Applied)

	logs, _ := env.logRepo.GetByOrderID(order.ID)
	assert.Empty(t, logs)

	// An applied edit is audited.
	results, err = service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: itemID, Quantity: 2},
	}, models.RequestMeta{})
	assert.NoError(t, err)
	assert.True(t, results[0].Applied)

	logs, _ = env.logRepo.GetByOrderID(order.ID)
	assert.Len(t, logs, 1)
	assert.Equal(t, models.ActionOrderUpdated, logs[0].Action)
}

func TestOrderService_UpdateOrderItemsOnlyWhilePlaced(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	assert.NoError(t, env.orderRepo.UpdateStatus(order.ID, models.OrderConfirmed))
	_, err := service.UpdateOrderItems(order.ID, actor, []services.ItemChange{
		{ItemID: order.Items[0].ID, Quantity: 2},
	}, models.RequestMeta{})
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestOrderService_SetOrderStatus(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	// Placed -> completed is not a permitted manual transition.
	err := service.SetOrderStatus(order.ID, models.OrderCompleted, "staff-1", models.RequestMeta{})
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Confirmed -> completed is.
	assert.NoError(t, env.orderRepo.UpdateStatus(order.ID, models.OrderConfirmed))
	assert.NoError(t, service.SetOrderStatus(order.ID, models.OrderCompleted, "staff-1", models.RequestMeta{}))

	stored, _ := env.orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderCompleted, stored.Status)

	// Unknown status strings are a validation error.
	var verr *models.ValidationError
	err = service.SetOrderStatus(order.ID, "shipped", "staff-1", models.RequestMeta{})
	assert.ErrorAs(t, err, &verr)
}

func TestOrderService_GetOrderLogs(t *testing.T) {
	env := newCheckoutEnv()
	service := newOrderService(env)
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	assert.NoError(t, service.CancelOrder(order.ID, actor, models.RequestMeta{IP: "10.0.0.9"}))

	logs, err := service.GetOrderLogs(order.ID, actor, false)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "10.0.0.9", logs[0].IP)

	// The audit trail is gated by order ownership.
	_, err = service.GetOrderLogs(order.ID, services.Actor{UserID: "user-2"}, false)
	assert.ErrorIs(t, err, models.ErrForbidden)
}
