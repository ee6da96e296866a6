package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecomkit/shop/internal/catalog"
	"github.com/ecomkit/shop/internal/contracts"
)

type Handler struct {
	service *catalog.Service
	logger  *log.Logger
}

func NewHandler(service *catalog.Service, logger *log.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "catalog-service",
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, pagination, err := h.service.ListProducts(ctx, page, limit)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data := make([]contracts.ProductSnapshot, 0, len(products))
	for _, p := range products {
		data = append(data, p.Snapshot())
	}

	writeJSON(w, http.StatusOK, envelope{Data: data, Meta: pagination})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.service.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Printf("get product %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeData(w, http.StatusOK, p.Snapshot())
}

type createProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.service.CreateProduct(ctx, req.Name, req.Price, req.Quantity)
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Printf("create product: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeData(w, http.StatusCreated, p.Snapshot())
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
