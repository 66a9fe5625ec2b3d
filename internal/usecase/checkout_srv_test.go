package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/gateway"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/circuitbreaker"
	"food-marketplace/pkg/utils"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testPaymentConfig = utils.PaymentConfig{
	Timeout:         time.Second,
	SuccessURL:      "http://localhost/ok",
	FailureURL:      "http://localhost/fail",
	PendingURL:      "http://localhost/pending",
	NotificationURL: "http://localhost/api/payments/webhook",
}

func twoItemSnapshot(t *testing.T) *request.CheckoutRequest {
	t.Helper()
	body := `{
		"productos": [
			{"producto": {"nombre": "Bandeja", "descripcion": "Paisa", "precio": 20000, "establecimiento_id": 4}, "cantidad": 2},
			{"product": {"name": "Limonada", "price": 10000}, "quantity": 1, "establishmentId": 4}
		],
		"total": 50000,
		"cantidadTotal": 3
	}`
	var req request.CheckoutRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestCheckoutService_GatewaySuccess(t *testing.T) {
	orderSvc, orders, _ := newOrderTestService(t, false)
	gw := &mockGateway{}
	gw.On("CreatePreference", mock.Anything, mock.MatchedBy(func(req gateway.PreferenceRequest) bool {
		return req.ExternalReference == "1" && req.AutoReturn == "approved" && len(req.Items) == 2
	})).Return(&gateway.Preference{
		ID:               "123-abc",
		InitPoint:        "https://example.com/init",
		SandboxInitPoint: "https://example.com/sandbox",
	}, nil)

	svc := NewCheckoutService(orderSvc, gw, testPaymentConfig, zaptest.NewLogger(t))

	resp, err := svc.Checkout(context.Background(), twoItemSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, "123-abc", resp.PreferenceID)
	assert.Equal(t, "https://example.com/init", resp.RedirectURL)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "COP", resp.Currency)
	assert.False(t, resp.Fallback)
	assert.False(t, resp.CreatedAt.IsZero())

	stored, err := orders.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored.PreferenceID)
	assert.Equal(t, "123-abc", *stored.PreferenceID)
	assert.Equal(t, int64(4), stored.EstablishmentID)
	gw.AssertExpectations(t)
}

func TestCheckoutService_SnapshotIsFrozen(t *testing.T) {
	orderSvc, orders, _ := newOrderTestService(t, false)
	svc := NewCheckoutService(orderSvc, gateway.NewDisabledGateway(), testPaymentConfig, zaptest.NewLogger(t))

	req := twoItemSnapshot(t)
	resp, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	// a later catalog price change reaches the client copy only
	req.Items[0].Product.Price = 99999

	stored, err := orders.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)

	var sum float64
	for _, item := range stored.Items {
		sum += item.Subtotal()
	}
	assert.Equal(t, 50000.0, sum)
	assert.Equal(t, 50000.0, stored.Total)

	want := []string{"Bandeja", "Limonada"}
	got := []string{stored.Items[0].Title, stored.Items[1].Title}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item titles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Limonada", stored.Items[1].Description)
}

func TestCheckoutService_GatewayFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		gw   func() gateway.Gateway
	}{
		{
			name: "gateway error",
			gw: func() gateway.Gateway {
				gw := &mockGateway{}
				gw.On("CreatePreference", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
				return gw
			},
		},
		{
			name: "gateway disabled",
			gw:   gateway.NewDisabledGateway,
		},
		{
			name: "empty preference",
			gw: func() gateway.Gateway {
				gw := &mockGateway{}
				gw.On("CreatePreference", mock.Anything, mock.Anything).Return(&gateway.Preference{}, nil)
				return gw
			},
		},
		{
			name: "open breaker",
			gw: func() gateway.Gateway {
				breaker := circuitbreaker.NewCircuitBreaker(1, time.Hour)
				_ = breaker.Execute(context.Background(), func(context.Context) error { return errors.New("boom") })
				cfg := testPaymentConfig
				cfg.BaseURL = "http://127.0.0.1:1"
				cfg.AccessToken = "token"
				return gateway.NewMercadoPagoGateway(cfg, breaker, zaptest.NewLogger(t))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderSvc, orders, _ := newOrderTestService(t, false)
			svc := NewCheckoutService(orderSvc, tt.gw(), testPaymentConfig, zaptest.NewLogger(t))

			resp, err := svc.Checkout(context.Background(), twoItemSnapshot(t))
			require.NoError(t, err)

			assert.True(t, resp.Fallback)
			assert.Regexp(t, `^MP-\d+-\d{4}$`, resp.PreferenceID)
			assert.True(t, strings.HasSuffix(resp.RedirectURL, "pref_id="+resp.PreferenceID))
			assert.True(t, strings.HasPrefix(resp.SandboxRedirectURL, "https://sandbox.mercadopago.com.co/"))

			stored, _ := orders.FindByID(context.Background(), resp.OrderID)
			assert.Equal(t, resp.PreferenceID, *stored.PreferenceID)
		})
	}
}

func TestCheckoutService_Validation(t *testing.T) {
	total := 100.0
	count := 1
	item := request.CheckoutItem{
		Product:  request.CheckoutProduct{Name: "Arepa", Price: 100},
		Quantity: 1,
	}

	tests := []struct {
		name string
		req  request.CheckoutRequest
	}{
		{"no items", request.CheckoutRequest{Total: &total, ItemCount: &count}},
		{"missing total", request.CheckoutRequest{Items: []request.CheckoutItem{item}, ItemCount: &count}},
		{"missing item count", request.CheckoutRequest{Items: []request.CheckoutItem{item}, Total: &total}},
		{"no establishment", request.CheckoutRequest{Items: []request.CheckoutItem{item}, Total: &total, ItemCount: &count}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderSvc, orders, _ := newOrderTestService(t, false)
			svc := NewCheckoutService(orderSvc, gateway.NewDisabledGateway(), testPaymentConfig, zaptest.NewLogger(t))

			_, err := svc.Checkout(context.Background(), &tt.req)

			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
			assert.Empty(t, orders.orders)
		})
	}
}

func TestMockPreference(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pref := MockPreference(now)

	assert.True(t, strings.HasPrefix(pref.ID, "MP-1700000000-"))
	assert.Equal(t, "https://www.mercadopago.com.co/checkout/v1/redirect?pref_id="+pref.ID, pref.InitPoint)
	assert.Equal(t, "https://sandbox.mercadopago.com.co/checkout/v1/redirect?pref_id="+pref.ID, pref.SandboxInitPoint)
	assert.Equal(t, now, pref.DateCreated)
}
