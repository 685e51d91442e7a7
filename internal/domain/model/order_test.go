package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CanCustomerCancel(t *testing.T) {
	assert.True(t, model.Order{Status: model.OrderStatusPending}.CanCustomerCancel())

	for _, s := range []model.OrderStatus{
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	} {
		assert.False(t, model.Order{Status: s}.CanCustomerCancel(), "status=%s", s)
	}
}

func TestOrder_CanAdminUpdateStatus(t *testing.T) {
	for _, s := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
	} {
		assert.True(t, model.Order{Status: s}.CanAdminUpdateStatus(), "status=%s", s)
	}

	assert.False(t, model.Order{Status: model.OrderStatusCompleted}.CanAdminUpdateStatus())
	assert.False(t, model.Order{Status: model.OrderStatusCancelled}.CanAdminUpdateStatus())
}

func TestOrderStatus_CanTransitionTo_ForwardChain(t *testing.T) {
	chain := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
		model.OrderStatusCompleted,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransitionTo(chain[i+1]), "%s -> %s", chain[i], chain[i+1])
	}

	// 飛び級と逆行は不可
	assert.False(t, model.OrderStatusPending.CanTransitionTo(model.OrderStatusPreparing))
	assert.False(t, model.OrderStatusPending.CanTransitionTo(model.OrderStatusCompleted))
	assert.False(t, model.OrderStatusPreparing.CanTransitionTo(model.OrderStatusConfirmed))
}

func TestOrderStatus_CanTransitionTo_CancelFromNonTerminal(t *testing.T) {
	for _, s := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
	} {
		assert.True(t, s.CanTransitionTo(model.OrderStatusCancelled), "status=%s", s)
	}
}

func TestOrderStatus_CanTransitionTo_TerminalAcceptsNothing(t *testing.T) {
	for _, s := range []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled} {
		for _, next := range []model.OrderStatus{
			model.OrderStatusPending,
			model.OrderStatusConfirmed,
			model.OrderStatusPreparing,
			model.OrderStatusDelivering,
			model.OrderStatusCompleted,
			model.OrderStatusCancelled,
		} {
			assert.False(t, s.CanTransitionTo(next), "%s -> %s", s, next)
		}
	}
}

func TestOrder_NextStatusOptions_Customer(t *testing.T) {
	o := model.Order{Status: model.OrderStatusPending}
	assert.Equal(t, []model.OrderStatus{model.OrderStatusCancelled}, o.NextStatusOptions(model.ActorCustomer))

	o.Status = model.OrderStatusConfirmed
	assert.Empty(t, o.NextStatusOptions(model.ActorCustomer))
}

func TestOrder_NextStatusOptions_Admin(t *testing.T) {
	o := model.Order{Status: model.OrderStatusPreparing}
	assert.Equal(t,
		[]model.OrderStatus{model.OrderStatusDelivering, model.OrderStatusCancelled},
		o.NextStatusOptions(model.ActorAdmin))

	o.Status = model.OrderStatusCompleted
	assert.Empty(t, o.NextStatusOptions(model.ActorAdmin))
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, model.OrderStatusDelivering.IsValid())
	assert.False(t, model.OrderStatus("SHIPPED").IsValid())
}
