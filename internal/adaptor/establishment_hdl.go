package adaptor

import (
	"net/http"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type EstablishmentHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewEstablishmentHandler(service usecase.AvailabilityService, log *zap.Logger) *EstablishmentHandler {
	return &EstablishmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "establishment")),
	}
}

// Availability handles GET /api/establishments/availability
func (h *EstablishmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAvailability(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list availability")
		return
	}

	utils.ResponseList(w, "Establecimientos obtenidos exitosamente", list, len(list))
}

// Heartbeat handles POST /api/establishments/heartbeat
func (h *EstablishmentHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req request.HeartbeatRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.Heartbeat(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "heartbeat")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
