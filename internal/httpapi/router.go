package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(products *ProductHandler, stock *StockHandler, carts *CartHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/{productId}", products.Get)
		r.Put("/{productId}", products.Update)
		r.Delete("/{productId}", products.Delete)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", products.ListCategories)
		r.Post("/", products.CreateCategory)
	})

	r.Route("/api/stock", func(r chi.Router) {
		r.Get("/{productId}", stock.Get)
		r.Get("/{productId}/availability", stock.Availability)
		r.Post("/adjust", stock.Adjust)
	})

	r.Route("/api/cart/{sessionId}", func(r chi.Router) {
		r.Get("/", carts.Get)
		r.Delete("/", carts.Clear)
		r.Post("/items", carts.AddItem)
		r.Put("/items/{productId}", carts.UpdateItem)
		r.Delete("/items/{productId}", carts.RemoveItem)
	})

	return r
}
