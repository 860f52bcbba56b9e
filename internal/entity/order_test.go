package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEnumValidation(t *testing.T) {
	assert.True(t, DeliveryModeDelivery.Valid())
	assert.True(t, DeliveryModePickup.Valid())
	assert.False(t, DeliveryMode("Teleport").Valid())
	assert.False(t, DeliveryMode("").Valid())

	assert.True(t, PaymentMethodCOD.Valid())
	assert.True(t, PaymentMethodGCash.Valid())
	assert.True(t, PaymentMethodMaya.Valid())
	assert.False(t, PaymentMethod("Barter").Valid())

	assert.False(t, PaymentMethodCOD.Wallet())
	assert.True(t, PaymentMethodGCash.Wallet())
	assert.True(t, PaymentMethodMaya.Wallet())

	assert.True(t, OrderStatusPreparing.Valid())
	assert.False(t, OrderStatus("Vanished").Valid())
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
}

func TestOrderTotal(t *testing.T) {
	o := &Order{
		Subtotal:    decimal.NewFromInt(300),
		DeliveryFee: decimal.NewFromInt(50),
	}
	assert.True(t, o.Total().Equal(decimal.NewFromInt(350)))
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: decimal.RequireFromString("120.50")}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("361.50")))
}
