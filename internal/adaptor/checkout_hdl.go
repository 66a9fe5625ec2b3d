package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout usecase.CheckoutService
	orders   usecase.OrderService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout usecase.CheckoutService, orders usecase.OrderService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		log:      log.With(zap.String("handler", "checkout")),
	}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.checkout.Checkout(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseSuccess(w, "Preferencia de pago creada", resp)
}

// PaymentWebhook handles POST and GET /api/payments/webhook. Fields may come in the query
// string, a form body or a JSON body; body fields win over query parameters.
func (h *CheckoutHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	req, err := parseWebhook(r)
	if err != nil {
		h.log.Warn("Invalid webhook payload", zap.Error(err))
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.orders.ReconcilePayment(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "payment webhook")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func parseWebhook(r *http.Request) (*request.PaymentWebhookRequest, error) {
	values := url.Values{}
	for key, v := range r.URL.Query() {
		values[key] = v
	}

	if r.Method == http.MethodPost && r.Body != nil {
		contentType := r.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				return nil, err
			}
			for key, v := range r.PostForm {
				values[key] = v
			}
		} else {
			body := map[string]any{}
			decoder := json.NewDecoder(r.Body)
			decoder.UseNumber()
			if err := decoder.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			for key, v := range body {
				switch val := v.(type) {
				case string:
					values.Set(key, val)
				case json.Number:
					values.Set(key, val.String())
				}
			}
		}
	}

	return &request.PaymentWebhookRequest{
		PreferenceID: queryValue(values, "preference_id", "preferenceId"),
		PaymentID:    queryValue(values, "payment_id", "paymentId"),
		Status:       queryValue(values, "status"),
	}, nil
}
