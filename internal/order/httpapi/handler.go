package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecomkit/shop/internal/order"
)

type Handler struct {
	service *order.Service
	logger  *log.Logger
}

func NewHandler(service *order.Service, logger *log.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "order-service",
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, pagination, err := h.service.ListOrders(ctx, page, limit)
	if err != nil {
		h.logger.Printf("list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data := make([]orderView, 0, len(orders))
	for _, o := range orders {
		data = append(data, presentOrder(o))
	}

	writeJSON(w, http.StatusOK, envelope{Data: data, Meta: pagination})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.logger.Printf("invalid order id %q: %v", id, err)
		writeError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	enriched, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.logger.Printf("get order %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if enriched == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	writeData(w, http.StatusOK, presentOrder(*enriched))
}

type createOrderRequest struct {
	OrderID         string `json:"orderId"`
	ProductID       string `json:"productId"`
	CustomerName    string `json:"customerName"`
	QuantityOrdered int    `json:"quantityOrdered"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateOrder(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	if req.CustomerName == "" {
		writeError(w, http.StatusBadRequest, "Customer name is required")
		return
	}
	if req.QuantityOrdered <= 0 {
		writeError(w, http.StatusBadRequest, "Quantity ordered must be greater than 0")
		return
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if req.OrderID != "" {
		if _, err := uuid.Parse(req.OrderID); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input data")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.service.CreateOrder(ctx, req.OrderID, req.ProductID, req.CustomerName, req.QuantityOrdered)
	if err != nil {
		var notFound *order.ProductNotFoundError
		var insufficient *order.InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			writeError(w, http.StatusNotFound, "Product not found")
		case errors.As(err, &insufficient):
			writeError(w, http.StatusBadRequest, "Insufficient stock available")
		default:
			h.logger.Printf("create order: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	// Render the created order enriched with a fresh snapshot, same as a GET.
	enriched, err := h.service.GetOrder(ctx, o.ID)
	if err != nil || enriched == nil {
		if err != nil {
			h.logger.Printf("reload created order %s: %v", o.ID, err)
		}
		enriched = &order.OrderWithProduct{Order: *o}
	}

	writeData(w, http.StatusCreated, presentOrder(*enriched))
}

// decodeCreateOrder accepts the flat request body and, for compatibility with
// callers that wrap the payload, an outer {"data": {...}} object.
func decodeCreateOrder(body io.Reader) (createOrderRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return createOrderRequest{}, err
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return createOrderRequest{}, err
	}
	if len(wrapper.Data) > 0 && string(wrapper.Data) != "null" {
		raw = wrapper.Data
	}

	var req createOrderRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return createOrderRequest{}, err
	}
	return req, nil
}

func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}
