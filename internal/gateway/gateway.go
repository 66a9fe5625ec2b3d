// Package gateway creates payment preferences on a MercadoPago-compatible checkout API.
package gateway

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned when no gateway credentials are configured.
var ErrDisabled = errors.New("payment gateway disabled")

type PreferenceItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
}

type Payer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             *Payer           `json:"payer,omitempty"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type Preference struct {
	ID               string    `json:"id"`
	InitPoint        string    `json:"init_point"`
	SandboxInitPoint string    `json:"sandbox_init_point"`
	DateCreated      time.Time `json:"date_created"`
}

type Gateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
}

type disabledGateway struct{}

// NewDisabledGateway returns a gateway that always fails with ErrDisabled.
func NewDisabledGateway() Gateway {
	return disabledGateway{}
}

func (disabledGateway) CreatePreference(context.Context, PreferenceRequest) (*Preference, error) {
	return nil, ErrDisabled
}
