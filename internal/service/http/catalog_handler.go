package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// CatalogHandler обрабатывает HTTP-запросы к каталогу товаров.
type CatalogHandler struct {
	client *catalog.Client
	logger *log.Entry
}

// NewCatalogHandler создаёт handler каталога.
func NewCatalogHandler(client *catalog.Client, logger *log.Entry) *CatalogHandler {
	return &CatalogHandler{
		client: client,
		logger: logger,
	}
}

// ListProducts обрабатывает GET /products. Поисковый запрос, категория
// и ключ сортировки применяются поверх полного списка.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.Products(r.Context())
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	products = catalog.FilterProducts(products, query, category)

	if raw := r.URL.Query().Get("sort"); raw != "" {
		key, ok := catalog.ParseSortKey(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, errors.New("unknown sort key"))
			return
		}
		products = catalog.SortProducts(products, key)
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct обрабатывает GET /products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.client.Product(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListByCategory обрабатывает GET /products/category/{category}.
func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := h.client.ProductsByCategory(r.Context(), category)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListCategories обрабатывает GET /products/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.Categories(r.Context())
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// writeCatalogError транслирует ошибки каталога в HTTP-статусы. Сбои
// внешнего API — это 502: сервис жив, недоступен источник данных.
func (h *CatalogHandler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidProduct):
		writeError(w, http.StatusBadGateway, err)
	default:
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			h.logger.WithError(err).WithField("path", r.URL.Path).Warn("catalog request failed")
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
	}
}
