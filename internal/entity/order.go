package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "Delivery"
	DeliveryModePickup   DeliveryMode = "Pick-up"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeDelivery || m == DeliveryModePickup
}

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "COD"
	PaymentMethodGCash PaymentMethod = "GCash"
	PaymentMethodMaya  PaymentMethod = "Maya"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCOD || p == PaymentMethodGCash || p == PaymentMethodMaya
}

// Wallet reports whether the method settles through an e-wallet. Wallet
// payments are treated as already confirmed; cash stays pending until an
// admin reviews it.
func (p PaymentMethod) Wallet() bool {
	return p == PaymentMethodGCash || p == PaymentMethodMaya
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusAwaiting PaymentStatus = "Awaiting Verification"
	PaymentStatusVerified PaymentStatus = "Verified"
	PaymentStatusRejected PaymentStatus = "Rejected"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusAwaiting, PaymentStatusVerified, PaymentStatusRejected:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusReadyForPickup OrderStatus = "Ready for Pick-up"
	OrderStatusCompleted      OrderStatus = "Completed"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery,
		OrderStatusReadyForPickup, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal statuses are never overwritten by incoming fulfillment events.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	ID              string
	OrderNumber     string
	UserID          string
	CustomerName    string
	CustomerPhone   string
	DeliveryMode    DeliveryMode
	DeliveryAddress *string
	DeliveryLat     *float64
	DeliveryLng     *float64
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Status          OrderStatus
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	ScheduledDate   *time.Time
	CreatedAt       time.Time
	Items           []OrderItem
}

// Total is derived, never stored.
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal.Add(o.DeliveryFee)
}

type OrderItem struct {
	ID        int64
	OrderID   string
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
