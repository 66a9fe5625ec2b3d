package wire

import (
	"food-marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEstablishment(r chi.Router, establishmentHandler *adaptor.EstablishmentHandler) {
	// GET /api/establishments/availability - discovery listing with live status
	r.Get("/api/establishments/availability", establishmentHandler.Availability)

	// POST /api/establishments/heartbeat - liveness ping, offline=true clears it
	r.Post("/api/establishments/heartbeat", establishmentHandler.Heartbeat)
}
