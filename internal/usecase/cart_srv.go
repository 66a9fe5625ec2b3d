package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"food-marketplace/internal/cart"
	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*response.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req *request.AddCartItemRequest) (*response.CartResponse, error)
	UpdateItem(ctx context.Context, sessionID string, productID int64, req *request.UpdateCartItemRequest) (*response.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*response.CartResponse, error)
	Clear(ctx context.Context, sessionID string) error
	ApplyCoupon(ctx context.Context, sessionID string, req *request.ApplyCouponRequest) (*cart.Coupon, error)
	Checkout(ctx context.Context, sessionID string, req *request.CartCheckoutRequest) (*response.CartCheckoutResponse, error)
}

type cartService struct {
	repo     *repository.Repository // cart & product
	checkout CheckoutService
	log      *zap.Logger
}

func NewCartService(repo *repository.Repository, checkout CheckoutService, log *zap.Logger) CartService {
	return &cartService{
		repo:     repo,
		checkout: checkout,
		log:      log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*response.CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return response.CartToResponse(c), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req *request.AddCartItemRequest) (*response.CartResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("productId y quantity son requeridos", errs)
	}

	// 2. Harga dan nama selalu dari catalog
	product, err := s.repo.Product.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperror.Store("failed to find product", err)
	}
	if product == nil {
		return nil, apperror.NotFound("Producto no encontrado")
	}

	// 3. Load, mutate, save
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.Add(toCartProduct(product), req.Quantity); err != nil {
		return nil, cartError(err)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.log.Debug("Cart item added",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
	)

	return response.CartToResponse(c), nil
}

func (s *cartService) UpdateItem(ctx context.Context, sessionID string, productID int64, req *request.UpdateCartItemRequest) (*response.CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(productID, req.Quantity); err != nil {
		return nil, cartError(err)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return response.CartToResponse(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*response.CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(productID); err != nil {
		return nil, cartError(err)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return response.CartToResponse(c), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Cart.Delete(ctx, sessionID); err != nil {
		return apperror.Store("failed to clear cart", err)
	}
	return nil
}

func (s *cartService) ApplyCoupon(ctx context.Context, sessionID string, req *request.ApplyCouponRequest) (*cart.Coupon, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.ValidationFields("Cupón inválido", errs)
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	coupon, err := c.ApplyCoupon(strings.ToUpper(strings.TrimSpace(req.Code)), req.Percent)
	if err != nil {
		return nil, cartError(err)
	}
	return &coupon, nil
}

// Checkout freezes the session cart and runs it through checkout. The cart is cleared only
// once an order exists.
func (s *cartService) Checkout(ctx context.Context, sessionID string, req *request.CartCheckoutRequest) (*response.CartCheckoutResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.Snapshot(time.Now())
	if err != nil {
		return nil, cartError(err)
	}

	total := snapshot.Total
	itemCount := snapshot.ItemCount
	checkoutReq := &request.CheckoutRequest{
		Items:           make([]request.CheckoutItem, len(snapshot.Items)),
		Total:           &total,
		ItemCount:       &itemCount,
		Payer:           req.Payer,
		DeliveryAddress: req.DeliveryAddress,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
	}
	for i, item := range snapshot.Items {
		checkoutReq.Items[i] = request.CheckoutItem{
			Product: request.CheckoutProduct{
				Name:            item.Product.Name,
				Description:     item.Product.Description,
				Price:           item.Product.Price,
				EstablishmentID: item.Product.EstablishmentID,
			},
			Quantity:        item.Quantity,
			EstablishmentID: item.Product.EstablishmentID,
		}
	}

	result, err := s.checkout.Checkout(ctx, checkoutReq)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.repo.Cart.Delete(ctx, sessionID); err != nil {
		s.log.Warn("Failed to clear cart after checkout",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.Int64("order_id", result.OrderID),
		)
	}

	return &response.CartCheckoutResponse{
		Checkout: result,
		Cart:     response.CartToResponse(c),
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *cartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperror.Validation("X-Session-ID es requerido")
	}

	c, err := s.repo.Cart.Get(ctx, sessionID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("session_id", sessionID))
		return nil, apperror.Store("failed to load cart", err)
	}
	if c == nil {
		c = cart.New(sessionID)
	}
	return c, nil
}

func (s *cartService) save(ctx context.Context, c *cart.Cart) error {
	if err := s.repo.Cart.Save(ctx, c); err != nil {
		s.log.Error("Failed to save cart", zap.Error(err), zap.String("session_id", c.SessionID))
		return apperror.Store("failed to save cart", err)
	}
	return nil
}

func toCartProduct(p *entity.Product) cart.Product {
	return cart.Product{
		ID:              p.ID,
		EstablishmentID: p.EstablishmentID,
		Name:            p.Name,
		Description:     utils.Deref(p.Description),
		Price:           p.Price,
		Available:       p.Available(),
	}
}

func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		return apperror.NotFound("El producto no está en el carrito")
	case errors.Is(err, cart.ErrEmptyCart):
		return apperror.Validation("El carrito está vacío")
	case errors.Is(err, cart.ErrProductUnavailable),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidDiscount):
		return apperror.Validation(err.Error())
	default:
		return apperror.Store("cart operation failed", err)
	}
}
