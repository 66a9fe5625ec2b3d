package request

type AddProductRequest struct {
	EstablishmentID int64   `json:"establishmentId" validate:"required,gt=0"`
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gt=0"`
	Stock           int     `json:"stock" validate:"gte=0"`
	Category        string  `json:"category"`
}

type RemoveProductRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type ListProductsRequest struct {
	EstablishmentID *int64
	ActiveOnly      bool
	Category        *string
	SearchTerm      *string
	MinPrice        *float64
	MaxPrice        *float64
}
