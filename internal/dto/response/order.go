package response

import (
	"encoding/json"
	"time"

	"food-marketplace/internal/data/entity"
)

type OrderResponse struct {
	ID              int64              `json:"id"`
	EstablishmentID int64              `json:"establishmentId"`
	Total           float64            `json:"total"`
	Items           []entity.OrderItem `json:"items"`
	State           string             `json:"state"`
	PreferenceID    *string            `json:"preferenceId"`
	CourierID       *int64             `json:"courierId"`
	Customer        json.RawMessage    `json:"customer,omitempty"`
	DeliveryAddress *string            `json:"deliveryAddress"`
	CustomerPhone   *string            `json:"customerPhone"`
	Notes           *string            `json:"notes"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func OrderToResponse(o *entity.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}

	resp := OrderResponse{
		ID:              o.ID,
		EstablishmentID: o.EstablishmentID,
		Total:           o.Total,
		Items:           items,
		State:           string(o.State),
		PreferenceID:    o.PreferenceID,
		CourierID:       o.CourierID,
		DeliveryAddress: o.DeliveryAddress,
		CustomerPhone:   o.CustomerPhone,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if json.Valid(o.CustomerData) {
		resp.Customer = o.CustomerData
	}
	return resp
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderToResponse(o)
	}
	return out
}

// StateChangeResponse is returned by the state override and by payment reconciliation.
type StateChangeResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	OrderID       int64   `json:"orderId"`
	State         string  `json:"state,omitempty"`
	NewState      string  `json:"newState,omitempty"`
	PreviousState string  `json:"previousState"`
	PreferenceID  *string `json:"preferenceId,omitempty"`
}

type AcceptOrderResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OrderID   int64  `json:"orderId"`
	CourierID int64  `json:"courierId"`
	NewState  string `json:"newState"`
}
