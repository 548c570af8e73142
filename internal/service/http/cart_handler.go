package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// CartHandler обрабатывает HTTP-запросы к корзине.
type CartHandler struct {
	service *cart.Service
	logger  *log.Entry
}

// NewCartHandler создаёт handler корзины.
func NewCartHandler(service *cart.Service, logger *log.Entry) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// addItemRequest — тело запроса на добавление товара.
type addItemRequest struct {
	Product domain.Product `json:"product"`
}

// addMultipleRequest — тело запроса на массовое добавление.
type addMultipleRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// updateQuantityRequest — тело запроса на изменение количества.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// itemStatusResponse — принадлежность товара корзине и его количество.
type itemStatusResponse struct {
	ProductID int64 `json:"product_id"`
	InCart    bool  `json:"in_cart"`
	Quantity  int   `json:"quantity"`
}

// GetCart обрабатывает GET /cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.State())
}

// AddItem обрабатывает POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Product.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidProduct)
		return
	}

	h.service.AddItem(r.Context(), req.Product)
	writeJSON(w, http.StatusOK, h.service.State())
}

// AddMultipleItems обрабатывает POST /cart/items/bulk.
func (h *CartHandler) AddMultipleItems(w http.ResponseWriter, r *http.Request) {
	var req addMultipleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Product.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidProduct)
		return
	}

	h.service.AddMultipleItems(r.Context(), req.Product, req.Quantity)
	writeJSON(w, http.StatusOK, h.service.State())
}

// RemoveItem обрабатывает DELETE /cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.service.RemoveItem(r.Context(), id)
	writeJSON(w, http.StatusOK, h.service.State())
}

// UpdateQuantity обрабатывает PUT /cart/items/{id}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.service.UpdateQuantity(r.Context(), id, req.Quantity)
	writeJSON(w, http.StatusOK, h.service.State())
}

// ClearCart обрабатывает DELETE /cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCart(r.Context())
	writeJSON(w, http.StatusOK, h.service.State())
}

// ItemStatus обрабатывает GET /cart/items/{id}.
func (h *CartHandler) ItemStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, itemStatusResponse{
		ProductID: id,
		InCart:    h.service.IsInCart(id),
		Quantity:  h.service.ItemQuantity(id),
	})
}

func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product id")
	}
	return id, nil
}
