package http

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vladislavdragonenkov/shopcart/internal/health"
)

// NewRouter собирает маршруты сервиса: корзина, каталог, сессия
// просмотра и health-пробы.
func NewRouter(cartHandler *CartHandler, catalogHandler *CatalogHandler, browseHandler *BrowseHandler, healthHandler *health.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)

	router.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Post("/items/bulk", cartHandler.AddMultipleItems)
		r.Get("/items/{id}", cartHandler.ItemStatus)
		r.Put("/items/{id}", cartHandler.UpdateQuantity)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
	})

	router.Route("/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/category/{category}", catalogHandler.ListByCategory)
		r.Get("/{id}", catalogHandler.GetProduct)
	})

	router.Route("/browse", func(r chi.Router) {
		r.Get("/", browseHandler.GetPage)
		r.Post("/refresh", browseHandler.Refresh)
		r.Post("/more", browseHandler.LoadMore)
		r.Put("/query", browseHandler.SetQuery)
	})

	router.Get("/healthz", healthHandler.ServeHTTP)
	router.Get("/livez", health.LivenessHandler)

	return router
}
