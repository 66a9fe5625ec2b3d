package wire

import (
	"food-marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders) // GET /api/orders

		// ==================== OPERATOR ROUTES ====================
		// Administrative override, writes the state without checking the current one
		r.Post("/state", orderHandler.SetState)

		// ==================== COURIER ROUTES ====================
		r.Post("/accept", orderHandler.AcceptOrder)
	})
}
