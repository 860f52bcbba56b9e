package kafka

import (
	"context"
	"fmt"
	"log/slog"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

// OrderStatusChangedHandler applies fulfillment progress to the order store
// and refreshes the status cache the storefront client polls against.
type OrderStatusChangedHandler struct {
	Store usecase.OrderStore
	Cache usecase.StatusCache
	Log   *slog.Logger
}

func NewOrderStatusChangedHandler(store usecase.OrderStore, cache usecase.StatusCache, log *slog.Logger) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Store: store, Cache: cache, Log: log}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	status := domain.OrderStatus(ev.Status)
	if !status.Valid() {
		// Poison value; log and drop rather than block the partition.
		h.Log.Warn("unknown order status in event", "order_id", ev.OrderID, "status", ev.Status)
		return nil
	}

	applied, err := h.Store.ApplyStatus(ctx, ev.OrderID, status)
	if err != nil {
		return fmt.Errorf("apply status: %w", err)
	}
	if !applied {
		// Missing or already terminal; nothing to cache.
		h.Log.Info("status event skipped", "order_id", ev.OrderID, "status", ev.Status)
		return nil
	}

	payment := domain.PaymentStatus(ev.PaymentStatus)
	if ev.PaymentStatus != "" && payment.Valid() {
		if _, err := h.Store.ApplyPaymentStatus(ctx, ev.OrderID, payment); err != nil {
			return fmt.Errorf("apply payment status: %w", err)
		}
	}

	// Cache best-effort. A blank payment status must never be cached: when
	// the fallback read fails the poll endpoint refills the cache from the
	// store on its next miss.
	if h.Cache != nil {
		if !payment.Valid() {
			if s, p, err := h.Store.GetStatus(ctx, ev.OrderID); err == nil {
				status, payment = s, p
			}
		}
		if payment.Valid() {
			_ = h.Cache.SetStatus(ctx, ev.OrderID, status, payment)
		}
	}
	return nil
}
