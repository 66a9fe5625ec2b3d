package request

type ListOrdersRequest struct {
	EstablishmentID *int64
	State           *string
	CourierID       *int64
	Limit           int
}

type SetOrderStateRequest struct {
	OrderID int64  `json:"orderId" validate:"required,gt=0"`
	State   string `json:"state" validate:"required"`
}

type AcceptOrderRequest struct {
	OrderID   int64 `json:"orderId" validate:"required,gt=0"`
	CourierID int64 `json:"courierId" validate:"required,gt=0"`
}

type PaymentWebhookRequest struct {
	PreferenceID string `json:"preferenceId"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}
