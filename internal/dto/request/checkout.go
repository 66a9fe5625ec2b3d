package request

import "encoding/json"

type CheckoutProduct struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gte=0"`
	EstablishmentID int64   `json:"establishmentId"`
}

// UnmarshalJSON also accepts the legacy Spanish keys.
func (p *CheckoutProduct) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name              string   `json:"name"`
		Nombre            string   `json:"nombre"`
		Description       string   `json:"description"`
		Descripcion       string   `json:"descripcion"`
		Price             *float64 `json:"price"`
		Precio            *float64 `json:"precio"`
		EstablishmentID   int64    `json:"establishmentId"`
		EstablecimientoID int64    `json:"establecimiento_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = firstString(raw.Name, raw.Nombre)
	p.Description = firstString(raw.Description, raw.Descripcion)
	p.EstablishmentID = firstNonZero(raw.EstablishmentID, raw.EstablecimientoID)
	switch {
	case raw.Price != nil:
		p.Price = *raw.Price
	case raw.Precio != nil:
		p.Price = *raw.Precio
	}
	return nil
}

type CheckoutItem struct {
	Product         CheckoutProduct `json:"product"`
	Quantity        int             `json:"quantity" validate:"gt=0"`
	EstablishmentID int64           `json:"establishmentId"`
}

func (i *CheckoutItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Product           *CheckoutProduct `json:"product"`
		Producto          *CheckoutProduct `json:"producto"`
		Quantity          int              `json:"quantity"`
		Cantidad          int              `json:"cantidad"`
		EstablishmentID   int64            `json:"establishmentId"`
		EstablecimientoID int64            `json:"establecimiento_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Product != nil:
		i.Product = *raw.Product
	case raw.Producto != nil:
		i.Product = *raw.Producto
	}
	i.Quantity = firstNonZero(raw.Quantity, raw.Cantidad)
	i.EstablishmentID = firstNonZero(raw.EstablishmentID, raw.EstablecimientoID)
	return nil
}

type PayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
	Total           *float64        `json:"total" validate:"required,gte=0"`
	ItemCount       *int            `json:"itemCount" validate:"required,gt=0"`
	Payer           *PayerRequest   `json:"payer,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress"`
	CustomerPhone   string          `json:"customerPhone"`
	Notes           string          `json:"notes"`
	Customer        json.RawMessage `json:"customer,omitempty"`
}

// UnmarshalJSON accepts item_count and the productos/cantidadTotal keys of older clients.
func (c *CheckoutRequest) UnmarshalJSON(data []byte) error {
	type plain CheckoutRequest
	var raw struct {
		plain
		Productos     []CheckoutItem `json:"productos"`
		CantidadTotal *int           `json:"cantidadTotal"`
		ItemCountKey  *int           `json:"item_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = CheckoutRequest(raw.plain)
	if len(c.Items) == 0 && len(raw.Productos) > 0 {
		c.Items = raw.Productos
	}
	if c.ItemCount == nil {
		c.ItemCount = raw.ItemCountKey
	}
	if c.ItemCount == nil {
		c.ItemCount = raw.CantidadTotal
	}
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero[T int | int64](values ...T) T {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
