package usecase

import (
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/events"
	"food-marketplace/internal/gateway"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Catalog      CatalogService
	Availability AvailabilityService
	Order        OrderService
	Checkout     CheckoutService
	Cart         CartService
}

func NewService(
	repo *repository.Repository,
	gw gateway.Gateway,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	order := NewOrderService(repo, publisher, config, log)
	checkout := NewCheckoutService(order, gw, config.Payment, log)

	return &Service{
		Auth:         NewAuthService(repo, log),
		Catalog:      NewCatalogService(repo, log),
		Availability: NewAvailabilityService(repo.Establishment, config.Order.HeartbeatWindow, log),
		Order:        order,
		Checkout:     checkout,
		Cart:         NewCartService(repo, checkout, log),
	}
}
