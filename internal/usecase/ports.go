package usecase

import (
	"context"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

// Identity is the verified caller supplied by the identity middleware.
// A zero UserID means "not authenticated".
type Identity struct {
	UserID string
	Email  string
}

// CatalogStore is the authoritative source of product names and prices.
type CatalogStore interface {
	GetProducts(ctx context.Context, ids []string) ([]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderStore persists orders together with their items. Create must be
// atomic: either the order row and every item land, or nothing does. The
// store assigns OrderNumber and CreatedAt on insert.
type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetStatusForUser(ctx context.Context, orderID, userID string) (domain.OrderStatus, domain.PaymentStatus, error)
	GetStatus(ctx context.Context, orderID string) (domain.OrderStatus, domain.PaymentStatus, error)
	ApplyStatus(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error)
	ApplyPaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) (bool, error)
}

// CartStore holds the per-user server-side cart.
type CartStore interface {
	FindCartIDForUser(ctx context.Context, userID string) (string, bool, error)
	GetItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpsertItem(ctx context.Context, userID, productID string, quantity int) error
	DeleteCartItems(ctx context.Context, cartID string) error
}

// StatusCache is a best-effort read-side cache of order status, refreshed by
// the fulfillment event consumer.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, payment domain.PaymentStatus) error
	GetStatus(ctx context.Context, orderID string) (domain.OrderStatus, domain.PaymentStatus, bool, error)
}

// CatalogCache caches the full product listing.
type CatalogCache interface {
	GetAll(ctx context.Context) ([]domain.Product, bool, error)
	SetAll(ctx context.Context, products []domain.Product) error
}
