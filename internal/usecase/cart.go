package usecase

import (
	"context"
	"log/slog"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

// Cart manages the server-side cart the storefront client keeps in sync.
type Cart struct {
	carts   CartStore
	catalog CatalogStore
	log     *slog.Logger
}

func NewCart(carts CartStore, catalog CatalogStore, log *slog.Logger) *Cart {
	return &Cart{carts: carts, catalog: catalog, log: log}
}

func (uc *Cart) Get(ctx context.Context, caller Identity) ([]domain.CartItem, error) {
	if caller.UserID == "" {
		return nil, ErrUnauthorized
	}
	items, err := uc.carts.GetItems(ctx, caller.UserID)
	if err != nil {
		return nil, dependency("get cart", err)
	}
	return items, nil
}

// UpsertItem sets the quantity of one cart line. Zero or negative quantity
// removes the line. The product must exist in the catalog.
func (uc *Cart) UpsertItem(ctx context.Context, caller Identity, productID string, quantity int) error {
	if caller.UserID == "" {
		return ErrUnauthorized
	}
	if productID == "" {
		return invalidRequest("Missing product id")
	}
	if quantity > 0 {
		products, err := uc.catalog.GetProducts(ctx, []string{productID})
		if err != nil {
			return dependency("catalog lookup", err)
		}
		if len(products) == 0 {
			return invalidRequest("Unknown product")
		}
	}
	if err := uc.carts.UpsertItem(ctx, caller.UserID, productID, quantity); err != nil {
		return dependency("upsert cart item", err)
	}
	return nil
}

func (uc *Cart) Clear(ctx context.Context, caller Identity) error {
	if caller.UserID == "" {
		return ErrUnauthorized
	}
	cartID, ok, err := uc.carts.FindCartIDForUser(ctx, caller.UserID)
	if err != nil {
		return dependency("find cart", err)
	}
	if !ok {
		return nil
	}
	if err := uc.carts.DeleteCartItems(ctx, cartID); err != nil {
		return dependency("clear cart", err)
	}
	return nil
}
