package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pmdeguzman/storefront-api/internal/adapter/http/middleware"
	"github.com/pmdeguzman/storefront-api/internal/logging"
)

func NewRouter(oh *OrderHandler, ph *ProductHandler, ch *CartHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", ph.ListProducts)

		auth := v1.Group("", authz.Require())
		{
			auth.POST("/orders", oh.PlaceOrder)
			auth.GET("/orders", oh.ListOrders)
			auth.GET("/orders/:id/status", oh.GetOrderStatus)

			auth.GET("/cart", ch.GetCart)
			auth.PUT("/cart/items", ch.UpsertCartItem)
			auth.DELETE("/cart", ch.ClearCart)
		}
	}

	return r
}
