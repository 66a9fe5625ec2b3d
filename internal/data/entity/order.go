package entity

import (
	"strings"
	"time"
)

type OrderState string

const (
	OrderPending   OrderState = "PENDING"
	OrderPaid      OrderState = "PAGADO"
	OrderReady     OrderState = "LISTO"
	OrderEnRoute   OrderState = "EN_CAMINO"
	OrderDelivered OrderState = "ENTREGADO"
	OrderRejected  OrderState = "RECHAZADO"
)

// OverridableStates are the states an operator may write directly.
var OverridableStates = []OrderState{OrderPaid, OrderReady, OrderEnRoute, OrderDelivered}

// ParseOrderState normalizes s. PENDIENTE is accepted for PENDING.
func ParseOrderState(s string) (OrderState, bool) {
	state := OrderState(strings.ToUpper(strings.TrimSpace(s)))
	if state == "PENDIENTE" {
		return OrderPending, true
	}
	switch state {
	case OrderPending, OrderPaid, OrderReady, OrderEnRoute, OrderDelivered, OrderRejected:
		return state, true
	}
	return "", false
}

// IsOverridable reports whether the state can be written by the administrative override.
func (s OrderState) IsOverridable() bool {
	for _, o := range OverridableStates {
		if s == o {
			return true
		}
	}
	return false
}

func (s OrderState) IsTerminal() bool {
	return s == OrderDelivered || s == OrderRejected
}

// OrderItem is the frozen line captured at checkout.
type OrderItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
}

func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

type Order struct {
	Base
	EstablishmentID int64       `db:"establishment_id"`
	Total           float64     `db:"total"`
	Items           []OrderItem `db:"items_json"`
	State           OrderState  `db:"state"`
	PreferenceID    *string     `db:"preference_id"`
	CourierID       *int64      `db:"courier_id"`
	CustomerData    []byte      `db:"customer_data_json"`
	DeliveryAddress *string     `db:"delivery_address"`
	CustomerPhone   *string     `db:"customer_phone"`
	Notes           *string     `db:"notes"`
}

type OrderFilter struct {
	EstablishmentID *int64
	State           *OrderState
	CourierID       *int64
	Limit           int
}

// StateChange is the outcome of a state write.
type StateChange struct {
	OrderID       int64
	PreviousState OrderState
	NewState      OrderState
	CourierID     *int64
	PreferenceID  *string
	OccurredAt    time.Time
}
