package response

import (
	"time"

	"food-marketplace/internal/data/entity"
)

type CheckoutResponse struct {
	PreferenceID       string             `json:"preferenceId"`
	RedirectURL        string             `json:"redirectUrl"`
	SandboxRedirectURL string             `json:"sandboxRedirectUrl"`
	Status             string             `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	Items              []entity.OrderItem `json:"items"`
	TotalAmount        float64            `json:"totalAmount"`
	Currency           string             `json:"currency"`
	OrderID            int64              `json:"orderId"`
	Fallback           bool               `json:"fallback"`
}
