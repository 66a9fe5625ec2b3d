package wire

import (
	"food-marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkoutHandler *adaptor.CheckoutHandler) {
	r.Post("/api/checkout", checkoutHandler.Checkout)

	// ==================== GATEWAY CALLBACKS ====================
	r.Post("/api/payments/webhook", checkoutHandler.PaymentWebhook)
	r.Get("/api/payments/webhook", checkoutHandler.PaymentWebhook)
}
