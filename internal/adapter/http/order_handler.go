package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pmdeguzman/storefront-api/internal/adapter/http/middleware"
	"github.com/pmdeguzman/storefront-api/internal/logging"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

var ordersPlaced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Successfully placed orders",
	},
	[]string{"delivery_mode", "payment_method"},
)

type OrderHandler struct {
	place   *usecase.PlaceOrder
	orders  *usecase.Orders
	timeout time.Duration
}

func NewOrderHandler(place *usecase.PlaceOrder, orders *usecase.Orders, timeout time.Duration) *OrderHandler {
	return &OrderHandler{place: place, orders: orders, timeout: timeout}
}

type placeOrderItemReq struct {
	ProductID string   `json:"product_id"`
	Quantity  float64  `json:"quantity"`
	Price     *float64 `json:"price"`
	Name      string   `json:"name"`
}

type placeOrderReq struct {
	CartItems       []placeOrderItemReq `json:"cartItems"`
	DeliveryMode    string              `json:"deliveryMode"`
	DeliveryAddress *string             `json:"deliveryAddress"`
	DeliveryLat     *float64            `json:"deliveryLat"`
	DeliveryLng     *float64            `json:"deliveryLng"`
	PaymentMethod   string              `json:"paymentMethod"`
	ScheduledDate   *string             `json:"scheduledDate"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
}

type placeOrderResp struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// PlaceOrder handler: translate to use case input. Validation beyond body
// shape lives in the use case so the failure ordering stays in one place.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items := make([]usecase.PlaceOrderItemInput, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		items = append(items, usecase.PlaceOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Name:      it.Name,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := h.place.Execute(ctx, ident, usecase.PlaceOrderInput{
		CartItems:       items,
		DeliveryMode:    req.DeliveryMode,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
		PaymentMethod:   req.PaymentMethod,
		ScheduledDate:   req.ScheduledDate,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	ordersPlaced.WithLabelValues(req.DeliveryMode, req.PaymentMethod).Inc()
	logging.From(c).Info("order placed", "order_id", out.OrderID, "order_number", out.OrderNumber)

	c.JSON(http.StatusOK, placeOrderResp{Success: true, OrderID: out.OrderID, OrderNumber: out.OrderNumber})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListForUser(ctx, ident)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		items := make([]gin.H, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, gin.H{
				"id":       it.ID,
				"name":     it.Name,
				"quantity": it.Quantity,
				"price":    it.Price,
			})
		}
		var scheduled *string
		if o.ScheduledDate != nil {
			s := o.ScheduledDate.Format("2006-01-02")
			scheduled = &s
		}
		out = append(out, gin.H{
			"id":               o.ID,
			"order_number":     o.OrderNumber,
			"status":           o.Status,
			"payment_method":   o.PaymentMethod,
			"payment_status":   o.PaymentStatus,
			"delivery_mode":    o.DeliveryMode,
			"delivery_address": o.DeliveryAddress,
			"subtotal":         o.Subtotal,
			"delivery_fee":     o.DeliveryFee,
			"total":            o.Total(),
			"scheduled_date":   scheduled,
			"created_at":       o.CreatedAt,
			"items":            items,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := h.orders.Status(ctx, ident, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         out.Status,
		"payment_status": out.PaymentStatus,
	})
}
