package wire

import (
	"food-marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)         // GET /api/products
		r.Post("/", productHandler.AddProduct)          // POST /api/products
		r.Post("/remove", productHandler.RemoveProduct) // POST /api/products/remove
		r.Delete("/{id}", productHandler.DeleteProduct) // DELETE /api/products/{id}
	})
}
