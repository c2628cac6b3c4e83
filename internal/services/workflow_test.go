package services_test

import (
	"testing"

	"devicestore/internal/models"
	"devicestore/internal/services"

	"github.com/stretchr/testify/assert"
)

func newWorkflowEnv() (*services.WorkflowService, *checkoutEnv) {
	env := newCheckoutEnv()
	workflow := services.NewWorkflowService(env.orderRepo, env.shipmentRepo, env.addressRepo, env.cartRepo, env.logRepo, nil)
	return workflow, env
}

func placeOrder(t *testing.T, env *checkoutEnv, actor services.Actor) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:     actor.UserID,
		GuestToken: actor.GuestToken,
		Items: []models.OrderItem{
			{DeviceID: "dev-1", Quantity: 1, UnitPrice: 10.0},
		},
		TotalAmount: 10.0,
		Status:      models.OrderPlaced,
	}
	payment := &models.Payment{UserID: actor.UserID, Method: models.PaymentCashOnDelivery, Amount: 10.0}
	assert.NoError(t, env.orderRepo.CreateWithPayment(order, payment))
	return order
}

func TestWorkflow_AutoCreateShipmentIsIdempotent(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	first, err := workflow.AutoCreateShipment(order.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.NotNil(t, first)

	// A second run returns the existing shipment unchanged.
	second, err := workflow.AutoCreateShipment(order.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, env.shipmentRepo.Count())
}

func TestWorkflow_AutoCreateShipmentUsesEarliestAddress(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	oldest := &models.Address{UserID: "user-1", Label: "home", Street: "1 Main St", City: "Leeds", Postcode: "LS1", Country: "UK"}
	assert.NoError(t, env.addressRepo.Create(oldest))
	newest := &models.Address{UserID: "user-1", Label: "work", Street: "2 Side St", City: "Leeds", Postcode: "LS2", Country: "UK"}
	assert.NoError(t, env.addressRepo.Create(newest))

	shipment, err := workflow.AutoCreateShipment(order.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, oldest.ID, shipment.AddressID)
	assert.Equal(t, models.ShipmentStandard, shipment.Method)
	assert.False(t, shipment.Finalised)
}

func TestWorkflow_AutoCreateShipmentSynthesizesAddress(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{GuestToken: "guest-xyz"}
	order := placeOrder(t, env, actor)

	shipment, err := workflow.AutoCreateShipment(order.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.NotEmpty(t, shipment.AddressID)

	address, err := env.addressRepo.GetByID(shipment.AddressID)
	assert.NoError(t, err)
	assert.Equal(t, "placeholder", address.Label)
	assert.Equal(t, "guest-xyz", address.UserID)
}

func TestWorkflow_AutoCreateShipmentSoftOutcomes(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{UserID: "user-1"}

	// Missing order: no shipment, no error.
	shipment, err := workflow.AutoCreateShipment("no-such-order", actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Nil(t, shipment)

	// Someone else's order.
	order := placeOrder(t, env, services.Actor{UserID: "user-2"})
	shipment, err = workflow.AutoCreateShipment(order.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Nil(t, shipment)

	// Cancelled order.
	cancelled := placeOrder(t, env, actor)
	assert.NoError(t, env.orderRepo.UpdateStatus(cancelled.ID, models.OrderCancelled))
	shipment, err = workflow.AutoCreateShipment(cancelled.ID, actor, models.RequestMeta{})
	assert.NoError(t, err)
	assert.Nil(t, shipment)
	assert.Equal(t, 0, env.shipmentRepo.Count())
}

func TestWorkflow_ConfirmOrder(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	confirmed, err := workflow.ConfirmOrder(order.ID)
	assert.NoError(t, err)
	assert.True(t, confirmed)

	stored, _ := env.orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderConfirmed, stored.Status)

	// Confirming again is a no-op, not an error.
	confirmed, err = workflow.ConfirmOrder(order.ID)
	assert.NoError(t, err)
	assert.False(t, confirmed)
}

func TestWorkflow_FinalizeCheckoutClearsCartDespiteFailures(t *testing.T) {
	workflow, env := newWorkflowEnv()
	actor := services.Actor{UserID: "user-1"}
	order := placeOrder(t, env, actor)

	device := seedDevice(t, env.deviceRepo, "Router", 10.0, 5)
	_, err := env.cart.AddToCart(actor.OwnerID(), device.ID, 1)
	assert.NoError(t, err)

	env.shipmentRepo.FailCreate = true
	outcome := workflow.FinalizeCheckout(order.ID, actor, models.RequestMeta{})

	assert.Nil(t, outcome.Shipment)
	assert.Len(t, outcome.StepErrors, 1)
	assert.True(t, outcome.OrderConfirmed)
	assert.True(t, outcome.CartCleared)

	items, _ := env.cartRepo.GetByOwner(actor.OwnerID())
	assert.Empty(t, items)
}
