package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"store-catalog/config"
	"store-catalog/internal/models"
	"store-catalog/internal/service"
	"store-catalog/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router, _ := newTestRouterWithStore(t)
	return router
}

func newTestRouterWithStore(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewStore(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	router := gin.New()
	NewHandler(service.NewCatalogService(st, nil, nil, time.Hour)).SetupRoutes(router)
	return router, st
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/ready", nil).Code)
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/customers", gin.H{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customer := decode[models.Customer](t, rec)

	rec = do(t, router, http.MethodPost, "/api/v1/products", gin.H{"name": "Widget", "price": "9.99", "stock": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[models.Product](t, rec)

	rec = do(t, router, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": customer.ID,
		"product_id":  product.ID,
		"quantity":    3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.True(t, decimal.RequireFromString("29.97").Equal(order.TotalAmount))

	rec = do(t, router, http.MethodPatch, "/api/v1/products/"+product.ID, gin.H{"price": "20.00"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decimal.RequireFromString("29.97").Equal(decode[models.Order](t, rec).TotalAmount))

	rec = do(t, router, http.MethodGet, "/api/v1/customers/"+customer.ID+"/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Order](t, rec), 1)

	rec = do(t, router, http.MethodDelete, "/api/v1/customers/"+customer.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	deleted := decode[map[string]interface{}](t, rec)
	assert.Equal(t, customer.ID, deleted["deleted"])
	assert.EqualValues(t, 1, deleted["cascaded_orders"])

	rec = do(t, router, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Order](t, rec))
}

func TestPartialUpdateOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/customers", gin.H{"name": "Grace", "phone": "555"})
	require.Equal(t, http.StatusCreated, rec.Code)
	customer := decode[models.Customer](t, rec)

	rec = do(t, router, http.MethodPatch, "/api/v1/customers/"+customer.ID, gin.H{"address": "1 Main St"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Customer](t, rec)

	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.True(t, updated.LastUpdateDate.After(customer.LastUpdateDate))
}

func TestErrorStatuses(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/products", gin.H{"name": "Pen", "price": "1.00"})
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode[models.Product](t, rec)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"empty customer name", http.MethodPost, "/api/v1/customers", gin.H{"name": ""}, http.StatusBadRequest},
		{"negative price", http.MethodPost, "/api/v1/products", gin.H{"name": "x", "price": "-1"}, http.StatusBadRequest},
		{"missing customer reference", http.MethodPost, "/api/v1/orders", gin.H{
			"customer_id": "nobody", "product_id": product.ID, "quantity": 1,
		}, http.StatusUnprocessableEntity},
		{"update missing customer", http.MethodPatch, "/api/v1/customers/nobody", gin.H{"name": "x"}, http.StatusNotFound},
		{"delete missing order", http.MethodDelete, "/api/v1/orders/nobody", nil, http.StatusNotFound},
		{"get missing product", http.MethodGet, "/api/v1/products/nobody", nil, http.StatusNotFound},
		{"orders of missing product", http.MethodGet, "/api/v1/products/nobody/orders", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec = do(t, router, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Order](t, rec))
}

func TestUnreachableDatabaseIsServiceUnavailable(t *testing.T) {
	router, st := newTestRouterWithStore(t)
	require.NoError(t, st.Close())

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"ready", http.MethodGet, "/ready", nil},
		{"list customers", http.MethodGet, "/api/v1/customers", nil},
		{"get product", http.MethodGet, "/api/v1/products/some-id", nil},
		{"create customer", http.MethodPost, "/api/v1/customers", gin.H{"name": "Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
		})
	}
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
