package wire

import (
	"food-marketplace/internal/adaptor"
	"food-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, log *zap.Logger) {
	r.Route("/api/cart", func(r chi.Router) {
		// Every cart route is scoped to the X-Session-ID session
		r.Use(middleware.Session(log))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.UpdateItem)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
		r.Post("/coupon", cartHandler.ApplyCoupon)
		r.Post("/checkout", cartHandler.Checkout)
	})
}
