package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomkit/shop/internal/contracts"
	"github.com/ecomkit/shop/internal/events"
	"github.com/ecomkit/shop/internal/order"
)

type stubRepo struct {
	orders map[string]order.Order
}

func (s *stubRepo) Create(ctx context.Context, o *order.Order) error {
	s.orders[o.ID] = *o
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *stubRepo) List(ctx context.Context, offset, limit int) ([]order.Order, int, error) {
	var all []order.Order
	for _, o := range s.orders {
		all = append(all, o)
	}
	return all, len(all), nil
}

func (s *stubRepo) FindByCustomerName(ctx context.Context, customerName string) ([]order.Order, error) {
	return nil, nil
}

func (s *stubRepo) FindByProductID(ctx context.Context, productID string) ([]order.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	return nil
}

type stubGateway struct {
	snapshots map[string]contracts.ProductSnapshot
}

func (s *stubGateway) Fetch(ctx context.Context, productID string) *contracts.ProductSnapshot {
	snap, ok := s.snapshots[productID]
	if !ok {
		return nil
	}
	return &snap
}

func newTestRouter(repo *stubRepo, gateway *stubGateway) http.Handler {
	logger := log.New(io.Discard, "", 0)
	svc := order.NewService(repo, gateway, events.NewMemoryPublisher(), logger)
	return NewRouter(NewHandler(svc, logger))
}

func errorMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp struct {
		Meta struct {
			Error string `json:"error"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Meta.Error
}

func TestCreateOrderEndpoint(t *testing.T) {
	productID := uuid.NewString()

	newRouter := func() http.Handler {
		return newTestRouter(
			&stubRepo{orders: map[string]order.Order{}},
			&stubGateway{snapshots: map[string]contracts.ProductSnapshot{
				productID: {ID: productID, Name: "Widget", Quantity: 5},
			}},
		)
	}

	t.Run("created", func(t *testing.T) {
		body := `{"productId":"` + productID + `","customerName":"Alice","quantityOrdered":2}`
		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data orderView `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Data.OrderID)
		assert.Equal(t, "Alice", resp.Data.CustomerName)
		assert.Equal(t, 2, resp.Data.QuantityOrdered)
		assert.Equal(t, order.StatusProcessing, resp.Data.OrderStatus)
		assert.Equal(t, "Widget", resp.Data.Product.Name)
	})

	t.Run("wrapped body accepted", func(t *testing.T) {
		body := `{"data":{"productId":"` + productID + `","customerName":"Bob","quantityOrdered":1}}`
		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		body := `{"productId":"` + productID + `","customerName":"Alice","quantityOrdered":6}`
		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Insufficient stock available", errorMessage(t, rec.Body))
	})

	t.Run("product not found", func(t *testing.T) {
		body := `{"productId":"` + uuid.NewString() + `","customerName":"Alice","quantityOrdered":1}`
		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", errorMessage(t, rec.Body))
	})

	t.Run("validation", func(t *testing.T) {
		tests := map[string]struct {
			body    string
			wantMsg string
		}{
			"malformed json":   {body: `{`, wantMsg: "Invalid input data"},
			"missing customer": {body: `{"productId":"` + productID + `","quantityOrdered":1}`, wantMsg: "Customer name is required"},
			"zero quantity":    {body: `{"productId":"` + productID + `","customerName":"Alice","quantityOrdered":0}`, wantMsg: "Quantity ordered must be greater than 0"},
			"negative quantity": {body: `{"productId":"` + productID + `","customerName":"Alice","quantityOrdered":-1}`, wantMsg: "Quantity ordered must be greater than 0"},
			"bad product id":   {body: `{"productId":"abc","customerName":"Alice","quantityOrdered":1}`, wantMsg: "Invalid input data"},
			"bad order id":     {body: `{"orderId":"abc","productId":"` + productID + `","customerName":"Alice","quantityOrdered":1}`, wantMsg: "Invalid input data"},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(tt.body))
				rec := httptest.NewRecorder()
				newRouter().ServeHTTP(rec, req)

				require.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, tt.wantMsg, errorMessage(t, rec.Body))
			})
		}
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	orderID := uuid.NewString()
	productID := uuid.NewString()

	repo := &stubRepo{orders: map[string]order.Order{
		orderID: {ID: orderID, ProductID: productID, CustomerName: "Alice", QuantityOrdered: 2, Status: order.StatusProcessing},
	}}

	t.Run("found with product", func(t *testing.T) {
		gateway := &stubGateway{snapshots: map[string]contracts.ProductSnapshot{
			productID: {ID: productID, Name: "Widget", Quantity: 3},
		}}
		req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID, nil)
		rec := httptest.NewRecorder()
		newTestRouter(repo, gateway).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data orderView `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, orderID, resp.Data.OrderID)
		assert.Equal(t, "Widget", resp.Data.Product.Name)
	})

	t.Run("product gone renders placeholder", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID, nil)
		rec := httptest.NewRecorder()
		newTestRouter(repo, &stubGateway{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data orderView `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Unknown Product", resp.Data.Product.Name)
		assert.Equal(t, productID, resp.Data.Product.ID)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		newTestRouter(repo, &stubGateway{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", errorMessage(t, rec.Body))
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		newTestRouter(repo, &stubGateway{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order ID format", errorMessage(t, rec.Body))
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	orderID := uuid.NewString()
	productID := uuid.NewString()

	repo := &stubRepo{orders: map[string]order.Order{
		orderID: {ID: orderID, ProductID: productID, CustomerName: "Alice", QuantityOrdered: 1, Status: order.StatusProcessing},
	}}
	gateway := &stubGateway{snapshots: map[string]contracts.ProductSnapshot{
		productID: {ID: productID, Name: "Widget", Quantity: 4},
	}}

	req := httptest.NewRequest(http.MethodGet, "/orders?page=1&limit=5", nil)
	rec := httptest.NewRecorder()
	newTestRouter(repo, gateway).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []orderView          `json:"data"`
		Meta contracts.Pagination `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, orderID, resp.Data[0].OrderID)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 5, resp.Meta.Limit)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Pages)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&stubRepo{orders: map[string]order.Order{}}, &stubGateway{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "order-service", resp["service"])
}
