package api

import (
	"net/http"

	"store-catalog/internal/models"
	"store-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	customer, err := h.catalog.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to create customer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to list customers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.catalog.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Customer not found", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) customerOrders(c *gin.Context) {
	orders, err := h.catalog.CustomerOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Failed to list customer orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var patch models.CustomerPatch
	if !bindJSON(c, &patch) {
		return
	}

	customer, err := h.catalog.UpdateCustomer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, "Failed to update customer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	id := c.Param("id")
	cascaded, err := h.catalog.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to delete customer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":         id,
		"cascaded_orders": cascaded,
	})
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Product not found", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) productOrders(c *gin.Context) {
	orders, err := h.catalog.ProductOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Failed to list product orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, "Failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	cascaded, err := h.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to delete product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":         id,
		"cascaded_orders": cascaded,
	})
}

func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	order, err := h.catalog.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.catalog.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.catalog.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var patch models.OrderPatch
	if !bindJSON(c, &patch) {
		return
	}

	order, err := h.catalog.UpdateOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, "Failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalog.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, "Failed to delete order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": id,
	})
}
