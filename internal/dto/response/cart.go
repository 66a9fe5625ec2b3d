package response

import "food-marketplace/internal/cart"

type CartResponse struct {
	SessionID string      `json:"sessionId"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}

func CartToResponse(c *cart.Cart) *CartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return &CartResponse{
		SessionID: c.SessionID,
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.TotalQuantity(),
	}
}

type CartCheckoutResponse struct {
	Checkout *CheckoutResponse `json:"checkout"`
	Cart     *CartResponse     `json:"cart"`
}
