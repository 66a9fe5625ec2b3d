package adaptor

import (
	"net/http"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	establishmentID, err := utils.ParseOptionalID(queryValue(query, "establishmentId", "establecimiento_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "establishmentId inválido", nil)
		return
	}
	courierID, err := utils.ParseOptionalID(queryValue(query, "courierId", "domiciliario_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "courierId inválido", nil)
		return
	}

	req := &request.ListOrdersRequest{
		EstablishmentID: establishmentID,
		State:           utils.NilIfBlank(queryValue(query, "state", "estado")),
		CourierID:       courierID,
		Limit:           utils.ParseInt(query.Get("limit"), 0),
	}

	orders, err := h.service.ListOrders(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseList(w, "Pedidos obtenidos exitosamente", orders, len(orders))
}

// SetState handles POST /api/orders/state. It is the administrative override.
func (h *OrderHandler) SetState(w http.ResponseWriter, r *http.Request) {
	var req request.SetOrderStateRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.SetState(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "set order state")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// AcceptOrder handles POST /api/orders/accept
func (h *OrderHandler) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	var req request.AcceptOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.AcceptOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "accept order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
