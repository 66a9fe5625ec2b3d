package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/internal/events"
	"food-marketplace/internal/statemachine"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/metrics"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

const (
	MaxOrderListLimit = 50

	msgOrderNotFound      = "Pedido no encontrado"
	msgOrderNotAcceptable = "El pedido no está disponible para aceptar"
)

// Payment outcomes reported by the gateway.
const (
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
	PaymentPending  = "pending"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order *entity.Order) error
	ListOrders(ctx context.Context, req *request.ListOrdersRequest) ([]response.OrderResponse, error)
	SetPreferenceReference(ctx context.Context, orderID int64, ref string) error
	AcceptOrder(ctx context.Context, req *request.AcceptOrderRequest) (*response.AcceptOrderResponse, error)
	SetState(ctx context.Context, req *request.SetOrderStateRequest) (*response.StateChangeResponse, error)
	ReconcilePayment(ctx context.Context, req *request.PaymentWebhookRequest) (*response.StateChangeResponse, error)
}

type orderService struct {
	orders                repository.OrderRepository
	publisher             events.Publisher
	listLimit             int
	fallbackLatestPending bool
	now                   func() time.Time
	log                   *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orders:                repo.Order,
		publisher:             publisher,
		listLimit:             utils.ClampLimit(config.Order.ListLimit, MaxOrderListLimit, MaxOrderListLimit),
		fallbackLatestPending: config.Payment.FallbackLatestPending,
		now:                   time.Now,
		log:                   log.With(zap.String("service", "order")),
	}
}

// CreateOrder persists order in PENDING. Items are stored as given and never re-read from
// the catalog.
func (s *orderService) CreateOrder(ctx context.Context, order *entity.Order) error {
	if order.EstablishmentID <= 0 {
		return apperror.Validation("No se pudo determinar el establecimiento del pedido")
	}
	if len(order.Items) == 0 {
		return apperror.Validation("El pedido no tiene productos")
	}
	if order.Total < 0 {
		return apperror.Validation("El total del pedido no puede ser negativo")
	}

	order.State = entity.OrderPending
	order.PreferenceID = nil
	order.CourierID = nil

	if err := s.orders.Create(ctx, order); err != nil {
		return apperror.Store("failed to create order", err)
	}

	s.log.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("establishment_id", order.EstablishmentID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)

	s.publish(ctx, events.TypeOrderCreated, statemachine.ActorPayment, entity.StateChange{
		OrderID:    order.ID,
		NewState:   order.State,
		OccurredAt: order.CreatedAt,
	})

	return nil
}

func (s *orderService) ListOrders(ctx context.Context, req *request.ListOrdersRequest) ([]response.OrderResponse, error) {
	filter := entity.OrderFilter{
		EstablishmentID: req.EstablishmentID,
		CourierID:       req.CourierID,
		Limit:           utils.ClampLimit(req.Limit, s.listLimit, MaxOrderListLimit),
	}

	if req.State != nil && strings.TrimSpace(*req.State) != "" {
		state, ok := entity.ParseOrderState(*req.State)
		if !ok {
			return nil, apperror.Validation("Estado de pedido inválido: " + *req.State)
		}
		filter.State = &state
	}

	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err))
		return nil, apperror.Store("failed to list orders", err)
	}

	return response.OrdersToResponse(orders), nil
}

func (s *orderService) SetPreferenceReference(ctx context.Context, orderID int64, ref string) error {
	if orderID <= 0 || strings.TrimSpace(ref) == "" {
		return apperror.Validation("orderId y preferenceId son requeridos")
	}

	err := s.orders.SetPreference(ctx, orderID, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(msgOrderNotFound)
	}
	if err != nil {
		return apperror.Store("failed to set preference reference", err)
	}
	return nil
}

// AcceptOrder assigns the courier with a single conditional update. When nothing was
// updated a follow-up read tells a missing order from one in the wrong state.
func (s *orderService) AcceptOrder(ctx context.Context, req *request.AcceptOrderRequest) (*response.AcceptOrderResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("orderId y courierId deben ser enteros positivos", errs)
	}

	// 2. Conditional update LISTO -> EN_CAMINO
	accepted, err := s.orders.AcceptIfReady(ctx, req.OrderID, req.CourierID)
	if err != nil {
		return nil, apperror.Store("failed to accept order", err)
	}

	// 3. Bedakan not found vs state salah
	if !accepted {
		order, err := s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return nil, apperror.Store("failed to find order", err)
		}
		if order == nil {
			return nil, apperror.NotFound(msgOrderNotFound)
		}

		s.log.Warn("Order not acceptable",
			zap.Error(statemachine.CanTransition(order.State, entity.OrderEnRoute, statemachine.ActorCourier)),
			zap.Int64("order_id", req.OrderID),
			zap.Int64("courier_id", req.CourierID),
		)
		return nil, apperror.InvalidTransition(msgOrderNotAcceptable)
	}

	s.log.Info("Order accepted",
		zap.Int64("order_id", req.OrderID),
		zap.Int64("courier_id", req.CourierID),
	)

	courierID := req.CourierID
	s.recordTransition(ctx, statemachine.ActorCourier, entity.StateChange{
		OrderID:       req.OrderID,
		PreviousState: entity.OrderReady,
		NewState:      entity.OrderEnRoute,
		CourierID:     &courierID,
		OccurredAt:    s.now(),
	})

	return &response.AcceptOrderResponse{
		Success:   true,
		Message:   "Pedido aceptado",
		OrderID:   req.OrderID,
		CourierID: req.CourierID,
		NewState:  string(entity.OrderEnRoute),
	}, nil
}

// SetState is the administrative override: any overridable state may be written over any
// current state. Writes outside the transition table are logged as overrides.
func (s *orderService) SetState(ctx context.Context, req *request.SetOrderStateRequest) (*response.StateChangeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("orderId y state son requeridos", errs)
	}

	state, ok := entity.ParseOrderState(req.State)
	if !ok || !state.IsOverridable() {
		return nil, apperror.Validation("Estado inválido. Valores permitidos: " + overridableStateNames())
	}

	previous, err := s.orders.UpdateState(ctx, req.OrderID, state, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, apperror.Store("failed to update order state", err)
	}

	if !statemachine.IsGraphed(previous, state) {
		s.log.Warn("Administrative state override",
			zap.Int64("order_id", req.OrderID),
			zap.String("previous_state", string(previous)),
			zap.String("new_state", string(state)),
		)
	} else {
		s.log.Info("Order state updated",
			zap.Int64("order_id", req.OrderID),
			zap.String("previous_state", string(previous)),
			zap.String("new_state", string(state)),
		)
	}

	s.recordTransition(ctx, statemachine.ActorOperator, entity.StateChange{
		OrderID:       req.OrderID,
		PreviousState: previous,
		NewState:      state,
		OccurredAt:    s.now(),
	})

	return &response.StateChangeResponse{
		Success:       true,
		Message:       "Estado actualizado a " + string(state),
		OrderID:       req.OrderID,
		NewState:      string(state),
		PreviousState: string(previous),
	}, nil
}

// ReconcilePayment applies a gateway outcome to the order holding the preference. Binding
// the newest PENDING order when nothing matches only happens when the compatibility flag
// is on.
func (s *orderService) ReconcilePayment(ctx context.Context, req *request.PaymentWebhookRequest) (*response.StateChangeResponse, error) {
	// 1. Validasi
	preferenceID := strings.TrimSpace(req.PreferenceID)
	if preferenceID == "" {
		return nil, apperror.Validation("preferenceId es requerido")
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = PaymentApproved
	}

	// 2. Cari order by preference
	order, err := s.orders.FindLatestByPreference(ctx, preferenceID)
	if err != nil {
		return nil, apperror.Store("failed to find order by preference", err)
	}

	// 3. Fallback ke PENDING terbaru
	if order == nil && s.fallbackLatestPending {
		order, err = s.orders.FindLatestPending(ctx)
		if err != nil {
			return nil, apperror.Store("failed to find pending order", err)
		}
		if order != nil {
			s.log.Warn("Binding payment to latest pending order",
				zap.String("preference_id", preferenceID),
				zap.Int64("order_id", order.ID),
			)
		}
	}
	if order == nil {
		s.log.Warn("No order for payment", zap.String("preference_id", preferenceID))
		return nil, apperror.NotFound("No se encontró un pedido para la preferencia " + preferenceID)
	}

	// 4. Tulis state baru
	state := PaymentState(status)
	previous, err := s.orders.UpdateState(ctx, order.ID, state, &preferenceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, apperror.Store("failed to update order state", err)
	}

	if err := statemachine.CanTransition(previous, state, statemachine.ActorPayment); err != nil {
		s.log.Warn("Payment outcome outside transition table",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
	}

	s.log.Info("Payment reconciled",
		zap.Int64("order_id", order.ID),
		zap.String("preference_id", preferenceID),
		zap.String("payment_id", req.PaymentID),
		zap.String("status", status),
		zap.String("new_state", string(state)),
	)

	s.recordTransition(ctx, statemachine.ActorPayment, entity.StateChange{
		OrderID:       order.ID,
		PreviousState: previous,
		NewState:      state,
		PreferenceID:  &preferenceID,
		OccurredAt:    s.now(),
	})

	return &response.StateChangeResponse{
		Success:       true,
		Message:       "Pago procesado",
		OrderID:       order.ID,
		State:         string(state),
		PreviousState: string(previous),
		PreferenceID:  &preferenceID,
	}, nil
}

// PaymentState maps a gateway outcome to an order state. Unknown outcomes count as paid.
func PaymentState(status string) entity.OrderState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case PaymentRejected:
		return entity.OrderRejected
	case PaymentPending:
		return entity.OrderPending
	default:
		return entity.OrderPaid
	}
}

func overridableStateNames() string {
	names := make([]string, len(entity.OverridableStates))
	for i, st := range entity.OverridableStates {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

func (s *orderService) recordTransition(ctx context.Context, actor statemachine.Actor, change entity.StateChange) {
	metrics.RecordOrderTransition(string(change.PreviousState), string(change.NewState), string(actor))
	s.publish(ctx, events.TypeOrderStateChanged, actor, change)
}

// publish is best-effort; the state is already persisted.
func (s *orderService) publish(ctx context.Context, eventType string, actor statemachine.Actor, change entity.StateChange) {
	event := events.OrderEvent{
		Type:          eventType,
		OrderID:       change.OrderID,
		PreviousState: string(change.PreviousState),
		NewState:      string(change.NewState),
		Actor:         string(actor),
		CourierID:     change.CourierID,
		PreferenceID:  change.PreferenceID,
		OccurredAt:    change.OccurredAt,
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warn("Failed to publish order event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.Int64("order_id", change.OrderID),
		)
	}
}
