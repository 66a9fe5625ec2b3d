package request

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code    string  `json:"code" validate:"required"`
	Percent float64 `json:"percent" validate:"gt=0,lte=100"`
}

type CartCheckoutRequest struct {
	Payer           *PayerRequest `json:"payer,omitempty"`
	DeliveryAddress string        `json:"deliveryAddress"`
	CustomerPhone   string        `json:"customerPhone"`
	Notes           string        `json:"notes"`
}
