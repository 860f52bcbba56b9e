package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

// PlaceOrderItemInput is one submitted cart line. Price and Name are client
// echoes and are never trusted; pricing always comes from the catalog.
type PlaceOrderItemInput struct {
	ProductID string
	Quantity  float64
	Price     *float64
	Name      string
}

type PlaceOrderInput struct {
	CartItems       []PlaceOrderItemInput
	DeliveryMode    string
	DeliveryAddress *string
	DeliveryLat     *float64
	DeliveryLng     *float64
	PaymentMethod   string
	ScheduledDate   *string
	CustomerName    string
	CustomerPhone   string
}

type PlaceOrderOutput struct {
	OrderID     string
	OrderNumber string
}

// PlaceOrder revalidates a submitted cart against the catalog, prices it,
// persists the order atomically and clears the caller's cart.
type PlaceOrder struct {
	catalog     CatalogStore
	orders      OrderStore
	carts       CartStore
	deliveryFee decimal.Decimal
	log         *slog.Logger
}

func NewPlaceOrder(catalog CatalogStore, orders OrderStore, carts CartStore, deliveryFee decimal.Decimal, log *slog.Logger) *PlaceOrder {
	return &PlaceOrder{catalog: catalog, orders: orders, carts: carts, deliveryFee: deliveryFee, log: log}
}

func (uc *PlaceOrder) Execute(ctx context.Context, caller Identity, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if caller.UserID == "" {
		return PlaceOrderOutput{}, ErrUnauthorized
	}

	if len(in.CartItems) == 0 {
		return PlaceOrderOutput{}, invalidRequest("Cart is empty")
	}
	mode := domain.DeliveryMode(in.DeliveryMode)
	if !mode.Valid() {
		return PlaceOrderOutput{}, invalidRequest("Invalid delivery mode")
	}
	method := domain.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return PlaceOrderOutput{}, invalidRequest("Invalid payment method")
	}

	// Distinct, non-empty product ids. Submitted order is kept for the lines
	// themselves; the id set is only for the catalog lookup.
	seen := make(map[string]struct{}, len(in.CartItems))
	ids := make([]string, 0, len(in.CartItems))
	for _, item := range in.CartItems {
		if item.ProductID == "" {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	if len(ids) == 0 {
		return PlaceOrderOutput{}, invalidRequest("No valid products in cart")
	}

	products, err := uc.catalog.GetProducts(ctx, ids)
	if err != nil {
		return PlaceOrderOutput{}, dependency("catalog lookup", err)
	}

	type listed struct {
		name  string
		price decimal.Decimal
	}
	byID := make(map[string]listed, len(products))
	for _, p := range products {
		price := p.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		byID[p.ID] = listed{name: p.Name, price: price}
	}

	// Per-item tolerance: a line that cannot be resolved or carries a bad
	// quantity is dropped, it never fails the whole order. Fractional
	// quantities floor so the customer is never overcharged; anything that
	// floors below one, or is too large to convert safely, is unusable.
	sanitized := make([]domain.OrderItem, 0, len(in.CartItems))
	for _, item := range in.CartItems {
		p, ok := byID[item.ProductID]
		q := item.Quantity
		if !ok || math.IsNaN(q) || q < 1 || q > math.MaxInt32 {
			continue
		}
		sanitized = append(sanitized, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      p.name,
			Quantity:  int(math.Floor(q)),
			Price:     p.price,
		})
	}
	if len(sanitized) == 0 {
		return PlaceOrderOutput{}, invalidRequest("No valid order items")
	}

	subtotal := decimal.Zero
	for _, item := range sanitized {
		subtotal = subtotal.Add(item.Subtotal())
	}
	fee := decimal.Zero
	if mode == domain.DeliveryModeDelivery {
		fee = uc.deliveryFee
	}

	// Wallet payments are confirmed up front in this flow; cash waits for
	// admin review.
	paymentStatus, orderStatus := domain.PaymentStatusPending, domain.OrderStatusPending
	if method.Wallet() {
		paymentStatus, orderStatus = domain.PaymentStatusVerified, domain.OrderStatusPreparing
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        caller.UserID,
		CustomerName:  customerName(in.CustomerName, caller.Email),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		DeliveryMode:  mode,
		PaymentMethod: method,
		PaymentStatus: paymentStatus,
		Status:        orderStatus,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		ScheduledDate: parseScheduledDate(in.ScheduledDate),
		Items:         sanitized,
	}
	if mode == domain.DeliveryModeDelivery {
		order.DeliveryLat = in.DeliveryLat
		order.DeliveryLng = in.DeliveryLng
		order.DeliveryAddress = deliveryAddress(in.DeliveryAddress, in.DeliveryLat, in.DeliveryLng)
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		return PlaceOrderOutput{}, dependency("create order", err)
	}

	// Best-effort cart clear. The order is already durable; a missing cart is
	// not an error and a failed delete must not fail the request.
	if cartID, ok, err := uc.carts.FindCartIDForUser(ctx, caller.UserID); err != nil {
		uc.log.Warn("cart lookup failed after order", "order_id", order.ID, "user_id", caller.UserID, "err", err)
	} else if ok {
		if err := uc.carts.DeleteCartItems(ctx, cartID); err != nil {
			uc.log.Warn("cart clear failed after order", "order_id", order.ID, "cart_id", cartID, "err", err)
		}
	}

	return PlaceOrderOutput{OrderID: order.ID, OrderNumber: order.OrderNumber}, nil
}

func customerName(submitted, email string) string {
	if name := strings.TrimSpace(submitted); name != "" {
		return name
	}
	if email != "" {
		return email
	}
	return "Customer"
}

// parseScheduledDate is deliberately lenient: an unparseable date is treated
// as absent, not as a request error.
func parseScheduledDate(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

// deliveryAddress prefers the free-text address; with only a map pin it
// synthesizes a display string from the coordinates.
func deliveryAddress(addr *string, lat, lng *float64) *string {
	if addr != nil {
		if s := strings.TrimSpace(*addr); s != "" {
			return &s
		}
	}
	if lat != nil && lng != nil {
		s := fmt.Sprintf("Pinned (%.5f, %.5f)", *lat, *lng)
		return &s
	}
	return nil
}
