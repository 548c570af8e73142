package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/browse"
	"github.com/vladislavdragonenkov/shopcart/internal/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/health"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/memory"
)

// upstreamProducts — ответ заглушки внешнего каталога.
var upstreamProducts = []domain.Product{
	{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Image: "https://img/1.png", Rating: domain.Rating{Rate: 3.9, Count: 120}},
	{ID: 2, Title: "T-Shirt", Price: 22.3, Category: "men's clothing", Image: "https://img/2.png", Rating: domain.Rating{Rate: 4.1, Count: 259}},
	{ID: 3, Title: "Gold Ring", Price: 695, Category: "jewelery", Image: "https://img/3.png", Rating: domain.Rating{Rate: 4.6, Count: 400}},
	{ID: 4, Title: "SSD Drive", Price: 109, Category: "electronics", Image: "https://img/4.png", Rating: domain.Rating{Rate: 4.8, Count: 319}},
}

// newUpstream поднимает заглушку внешнего API каталога.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(upstreamProducts)
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(upstreamProducts[0])
	})
	mux.HandleFunc("/products/99", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"men's clothing", "jewelery", "electronics"})
	})
	mux.HandleFunc("/products/category/electronics", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Product{upstreamProducts[3]})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestRouter собирает полный роутер поверх in-memory хранилища и
// заглушки каталога.
func newTestRouter(t *testing.T) (http.Handler, *cart.Service) {
	t.Helper()

	upstream := newUpstream(t)
	logger := log.WithField("component", "test")

	store := memory.NewSnapshotStore()
	cartService := cart.NewService(context.Background(), store)
	client := catalog.NewClient(upstream.URL, nil, logger)
	session := browse.NewSession(client, browse.WithDebounceDelay(0))
	require.NoError(t, session.Refresh(context.Background()))

	healthHandler := health.NewHandler("test")
	router := NewRouter(
		NewCartHandler(cartService, logger),
		NewCatalogHandler(client, logger),
		NewBrowseHandler(session, logger),
		healthHandler,
	)
	return router, cartService
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
