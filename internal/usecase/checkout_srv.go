package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/internal/gateway"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/metrics"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

const (
	CurrencyCOP = "COP"

	mockRedirectURL        = "https://www.mercadopago.com.co/checkout/v1/redirect?pref_id="
	mockSandboxRedirectURL = "https://sandbox.mercadopago.com.co/checkout/v1/redirect?pref_id="
)

type CheckoutService interface {
	Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
}

type checkoutService struct {
	orders  OrderService
	gateway gateway.Gateway
	config  utils.PaymentConfig
	now     func() time.Time
	log     *zap.Logger
}

func NewCheckoutService(orders OrderService, gw gateway.Gateway, config utils.PaymentConfig, log *zap.Logger) CheckoutService {
	return &checkoutService{
		orders:  orders,
		gateway: gw,
		config:  config,
		now:     time.Now,
		log:     log.With(zap.String("service", "checkout")),
	}
}

// Checkout persists a PENDING order for the snapshot and obtains a payment preference for
// it. A failing gateway never fails the checkout: a local mock preference is issued instead.
func (s *checkoutService) Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Validasi snapshot
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.ValidationFields("Datos del carrito incompletos", errs)
	}

	// 2. Build preference items
	items := make([]entity.OrderItem, len(req.Items))
	prefItems := make([]gateway.PreferenceItem, len(req.Items))
	for i, it := range req.Items {
		description := it.Product.Description
		if strings.TrimSpace(description) == "" {
			description = it.Product.Name
		}
		items[i] = entity.OrderItem{
			Title:       it.Product.Name,
			Description: description,
			Quantity:    it.Quantity,
			UnitPrice:   it.Product.Price,
			CurrencyID:  CurrencyCOP,
		}
		prefItems[i] = gateway.PreferenceItem(items[i])
	}

	// Declared total is authoritative; a mismatch is only logged
	var lineSum float64
	for _, item := range items {
		lineSum += item.Subtotal()
	}
	if math.Abs(lineSum-*req.Total) >= 0.01 {
		s.log.Warn("Declared total differs from item subtotals",
			zap.Float64("total", *req.Total),
			zap.Float64("items_subtotal", lineSum),
		)
	}

	// 3. Establishment dari item pertama
	establishmentID := req.Items[0].Product.EstablishmentID
	if establishmentID == 0 {
		establishmentID = req.Items[0].EstablishmentID
	}
	if establishmentID <= 0 {
		return nil, apperror.Validation("No se pudo determinar el establecimiento del pedido")
	}

	// 4. Persist order PENDING sebelum gateway
	order := &entity.Order{
		EstablishmentID: establishmentID,
		Total:           *req.Total,
		Items:           items,
		CustomerData:    req.Customer,
		DeliveryAddress: utils.NilIfBlank(req.DeliveryAddress),
		CustomerPhone:   utils.NilIfBlank(req.CustomerPhone),
		Notes:           utils.NilIfBlank(req.Notes),
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// 5. Gateway, fallback ke mock preference
	pref, fallback := s.createPreference(ctx, order.ID, prefItems, req.Payer)

	// 6. Attach preference (non-fatal)
	if err := s.orders.SetPreferenceReference(ctx, order.ID, pref.ID); err != nil {
		s.log.Warn("Failed to attach preference to order",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
			zap.String("preference_id", pref.ID),
		)
	}

	s.log.Info("Checkout completed",
		zap.Int64("order_id", order.ID),
		zap.String("preference_id", pref.ID),
		zap.Bool("fallback", fallback),
		zap.Float64("total", order.Total),
	)

	return &response.CheckoutResponse{
		PreferenceID:       pref.ID,
		RedirectURL:        pref.InitPoint,
		SandboxRedirectURL: pref.SandboxInitPoint,
		Status:             "pending",
		CreatedAt:          pref.DateCreated,
		Items:              items,
		TotalAmount:        order.Total,
		Currency:           CurrencyCOP,
		OrderID:            order.ID,
		Fallback:           fallback,
	}, nil
}

// createPreference calls the gateway within the configured timeout. The second value
// reports whether the mock fallback was used.
func (s *checkoutService) createPreference(ctx context.Context, orderID int64, items []gateway.PreferenceItem, payer *request.PayerRequest) (*gateway.Preference, bool) {
	prefReq := gateway.PreferenceRequest{
		Items:             items,
		ExternalReference: strconv.FormatInt(orderID, 10),
		BackURLs: gateway.BackURLs{
			Success: s.config.SuccessURL,
			Failure: s.config.FailureURL,
			Pending: s.config.PendingURL,
		},
		AutoReturn:      PaymentApproved,
		NotificationURL: s.config.NotificationURL,
	}
	if payer != nil && (payer.Name != "" || payer.Email != "") {
		prefReq.Payer = &gateway.Payer{Name: payer.Name, Email: payer.Email}
	}

	callCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	pref, err := s.gateway.CreatePreference(callCtx, prefReq)
	if err == nil && pref != nil && pref.ID != "" {
		if pref.DateCreated.IsZero() {
			pref.DateCreated = s.now()
		}
		metrics.RecordCheckout("gateway")
		return pref, false
	}
	if err == nil {
		err = errors.New("empty preference returned")
	}

	upstream := apperror.Upstream("payment gateway unavailable", err)
	if errors.Is(err, gateway.ErrDisabled) {
		s.log.Debug("Payment gateway disabled, using mock preference", zap.Int64("order_id", orderID))
	} else {
		s.log.Warn("Payment gateway failed, using mock preference",
			zap.Error(upstream),
			zap.Int64("order_id", orderID),
		)
	}
	metrics.RecordCheckout("fallback")

	return MockPreference(s.now()), true
}

// MockPreference builds a locally generated preference with checkout redirect URLs.
func MockPreference(now time.Time) *gateway.Preference {
	id := utils.GenerateMockPreferenceID(now)
	return &gateway.Preference{
		ID:               id,
		InitPoint:        mockRedirectURL + id,
		SandboxInitPoint: mockSandboxRedirectURL + id,
		DateCreated:      now,
	}
}
