package entity

import "time"

type Product struct {
	ID                int64     `db:"id"`
	EstablishmentID   int64     `db:"establishment_id"`
	EstablishmentName string    `db:"establishment_name"`
	Name              string    `db:"name"`
	Description       *string   `db:"description"`
	Price             float64   `db:"price"`
	Stock             int       `db:"stock"`
	Category          *string   `db:"category"`
	IsActive          bool      `db:"active"`
	CreatedAt         time.Time `db:"created_at"`
}

// Available reports whether the product can be put in a cart.
func (p *Product) Available() bool {
	return p.IsActive && p.Stock > 0
}

type ProductFilter struct {
	EstablishmentID *int64
	ActiveOnly      bool
	Category        *string
	Search          *string
	MinPrice        *float64
	MaxPrice        *float64
}
