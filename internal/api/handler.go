package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"store-catalog/internal/service"
	"store-catalog/internal/store"
	"store-catalog/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog *service.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *service.CatalogService) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/customers", h.createCustomer)
		v1.GET("/customers", h.listCustomers)
		v1.GET("/customers/:id", h.getCustomer)
		v1.GET("/customers/:id/orders", h.customerOrders)
		v1.PATCH("/customers/:id", h.updateCustomer)
		v1.DELETE("/customers/:id", h.deleteCustomer)

		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/products/:id/orders", h.productOrders)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PATCH("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready only when the database answers
func (h *Handler) readinessCheck(c *gin.Context) {
	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// idempotencyKey prefers the body field and falls back to the header
func idempotencyKey(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return c.GetHeader("Idempotency-Key")
}

// writeError maps store errors to HTTP statuses
func writeError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrReference):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConnection):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
