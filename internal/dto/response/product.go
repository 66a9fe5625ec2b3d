package response

import (
	"time"

	"food-marketplace/internal/data/entity"
)

type ProductResponse struct {
	ID                int64     `json:"id"`
	EstablishmentID   int64     `json:"establishmentId"`
	EstablishmentName string    `json:"establishmentName"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Price             float64   `json:"price"`
	Stock             int       `json:"stock"`
	Category          *string   `json:"category"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RemovedProduct echoes the deleted product.
type RemovedProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		EstablishmentID:   p.EstablishmentID,
		EstablishmentName: p.EstablishmentName,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Stock:             p.Stock,
		Category:          p.Category,
		Active:            p.IsActive,
		CreatedAt:         p.CreatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductToResponse(p)
	}
	return out
}
