package adaptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func newOrderRouter(t *testing.T, svc *mockOrderService) *chi.Mux {
	h := NewOrderHandler(svc, zaptest.NewLogger(t))
	r := chi.NewRouter()
	r.Get("/api/orders", h.ListOrders)
	r.Post("/api/orders/state", h.SetState)
	r.Post("/api/orders/accept", h.AcceptOrder)
	return r
}

func TestOrderHandler_ListOrders(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("ListOrders", mock.Anything, mock.MatchedBy(func(req *request.ListOrdersRequest) bool {
		return req.State != nil && *req.State == "LISTO" && req.Limit == 20 && req.EstablishmentID == nil
	})).Return([]response.OrderResponse{{ID: 5, State: "LISTO"}}, nil)

	rec := httptest.NewRecorder()
	newOrderRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?estado=LISTO&limit=20", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	svc.AssertExpectations(t)
}

func TestOrderHandler_ListOrders_BadCourier(t *testing.T) {
	svc := new(mockOrderService)

	rec := httptest.NewRecorder()
	newOrderRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?courierId=-4", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_AcceptOrder(t *testing.T) {
	tests := []struct {
		name       string
		resp       *response.AcceptOrderResponse
		err        error
		wantStatus int
	}{
		{
			name:       "accepted",
			resp:       &response.AcceptOrderResponse{Success: true, OrderID: 5, CourierID: 9, NewState: "EN_CAMINO"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "already taken",
			err:        apperror.InvalidTransition("Pedido no disponible para aceptar"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing order",
			err:        apperror.NotFound("Pedido no encontrado"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockOrderService)
			call := svc.On("AcceptOrder", mock.Anything, &request.AcceptOrderRequest{OrderID: 5, CourierID: 9})
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(tt.resp, nil)
			}

			rec := httptest.NewRecorder()
			newOrderRouter(t, svc).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/orders/accept", `{"orderId":5,"courierId":9}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.resp != nil {
				body := decodeBody(t, rec)
				assert.Equal(t, "EN_CAMINO", body["newState"])
				assert.Equal(t, float64(9), body["courierId"])
			}
		})
	}
}

func TestOrderHandler_SetState(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("SetState", mock.Anything, &request.SetOrderStateRequest{OrderID: 5, State: "ENTREGADO"}).
		Return(&response.StateChangeResponse{Success: true, OrderID: 5, NewState: "ENTREGADO", PreviousState: "EN_CAMINO"}, nil)

	rec := httptest.NewRecorder()
	newOrderRouter(t, svc).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/orders/state", `{"orderId":5,"state":"ENTREGADO"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "EN_CAMINO", body["previousState"])
	assert.Equal(t, "ENTREGADO", body["newState"])
}
