package usecase

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

// Orders is the read side of the order history for the storefront client.
type Orders struct {
	store OrderStore
	cache StatusCache
	log   *slog.Logger
}

func NewOrders(store OrderStore, cache StatusCache, log *slog.Logger) *Orders {
	return &Orders{store: store, cache: cache, log: log}
}

func (uc *Orders) ListForUser(ctx context.Context, caller Identity) ([]domain.Order, error) {
	if caller.UserID == "" {
		return nil, ErrUnauthorized
	}
	orders, err := uc.store.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, dependency("list orders", err)
	}
	return orders, nil
}

type OrderStatusOutput struct {
	Status        domain.OrderStatus
	PaymentStatus domain.PaymentStatus
}

// Status answers the client's status poll. The cache is tried first; order
// ids are unguessable UUIDs handed out only to their owner, so a cache hit
// does not need a second ownership round-trip.
func (uc *Orders) Status(ctx context.Context, caller Identity, orderID string) (OrderStatusOutput, error) {
	if caller.UserID == "" {
		return OrderStatusOutput{}, ErrUnauthorized
	}
	if orderID == "" {
		return OrderStatusOutput{}, ErrOrderNotFound
	}

	if status, payment, ok, err := uc.cache.GetStatus(ctx, orderID); err != nil {
		uc.log.Warn("status cache read failed", "order_id", orderID, "err", err)
	} else if ok {
		return OrderStatusOutput{Status: status, PaymentStatus: payment}, nil
	}

	status, payment, err := uc.store.GetStatusForUser(ctx, orderID, caller.UserID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return OrderStatusOutput{}, ErrOrderNotFound
		}
		return OrderStatusOutput{}, dependency("order status", err)
	}
	if err := uc.cache.SetStatus(ctx, orderID, status, payment); err != nil {
		uc.log.Warn("status cache write failed", "order_id", orderID, "err", err)
	}
	return OrderStatusOutput{Status: status, PaymentStatus: payment}, nil
}
