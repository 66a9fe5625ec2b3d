// Package cart implements the shopping cart owned by a single client session.
package cart

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductUnavailable = errors.New("product is not available")
	ErrItemNotFound       = errors.New("product is not in the cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidDiscount    = errors.New("discount must be between 1% and 100%")
)

// Product is the catalog data a cart line needs.
type Product struct {
	ID              int64   `json:"id"`
	EstablishmentID int64   `json:"establishmentId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Available       bool    `json:"available"`
}

type Item struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Cart is a value owned by one session. It is not safe for concurrent use; callers load,
// mutate and save it per request.
type Cart struct {
	SessionID string    `json:"sessionId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is the frozen view of the cart handed to checkout.
type Snapshot struct {
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Coupon is the result of applying a percentage discount.
type Coupon struct {
	Code     string  `json:"code"`
	Percent  float64 `json:"percent"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Items: []Item{}}
}

// Add puts qty units of p in the cart, merging with an existing line.
func (c *Cart) Add(p Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if !p.Available {
		return fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Product = p
			c.Items[i].Quantity += qty
			c.Items[i].Subtotal = lineTotal(p.Price, c.Items[i].Quantity)
			c.touch()
			return nil
		}
	}

	c.Items = append(c.Items, Item{Product: p, Quantity: qty, Subtotal: lineTotal(p.Price, qty)})
	c.touch()
	return nil
}

func (c *Cart) Remove(productID int64) error {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (c *Cart) UpdateQuantity(productID int64, qty int) error {
	if qty <= 0 {
		return c.Remove(productID)
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = qty
			c.Items[i].Subtotal = lineTotal(c.Items[i].Product.Price, qty)
			c.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return round2(total)
}

func (c *Cart) TotalQuantity() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// ApplyCoupon computes the discounted total. Item prices are left untouched.
func (c *Cart) ApplyCoupon(code string, percent float64) (Coupon, error) {
	if c.IsEmpty() {
		return Coupon{}, ErrEmptyCart
	}
	if percent <= 0 || percent > 100 {
		return Coupon{}, ErrInvalidDiscount
	}

	total := c.Total()
	discount := round2(total * percent / 100)

	return Coupon{
		Code:     code,
		Percent:  percent,
		Discount: discount,
		Total:    round2(total - discount),
	}, nil
}

// Snapshot freezes the cart for checkout.
func (c *Cart) Snapshot(now time.Time) (Snapshot, error) {
	if c.IsEmpty() {
		return Snapshot{}, ErrEmptyCart
	}

	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	return Snapshot{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.TotalQuantity(),
		CreatedAt: now,
	}, nil
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

func lineTotal(price float64, qty int) float64 {
	return round2(price * float64(qty))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
