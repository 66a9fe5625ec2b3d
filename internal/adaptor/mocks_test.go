package adaptor

import (
	"context"

	"food-marketplace/internal/cart"
	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) AddProduct(ctx context.Context, req *request.AddProductRequest) (*response.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ProductResponse), args.Error(1)
}

func (m *mockCatalogService) RemoveProduct(ctx context.Context, productID int64) (*response.RemovedProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RemovedProduct), args.Error(1)
}

func (m *mockCatalogService) ListProducts(ctx context.Context, req *request.ListProductsRequest) ([]response.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.ProductResponse), args.Error(1)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderService) ListOrders(ctx context.Context, req *request.ListOrdersRequest) ([]response.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.OrderResponse), args.Error(1)
}

func (m *mockOrderService) SetPreferenceReference(ctx context.Context, orderID int64, ref string) error {
	return m.Called(ctx, orderID, ref).Error(0)
}

func (m *mockOrderService) AcceptOrder(ctx context.Context, req *request.AcceptOrderRequest) (*response.AcceptOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AcceptOrderResponse), args.Error(1)
}

func (m *mockOrderService) SetState(ctx context.Context, req *request.SetOrderStateRequest) (*response.StateChangeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.StateChangeResponse), args.Error(1)
}

func (m *mockOrderService) ReconcilePayment(ctx context.Context, req *request.PaymentWebhookRequest) (*response.StateChangeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.StateChangeResponse), args.Error(1)
}

type mockCheckoutService struct{ mock.Mock }

func (m *mockCheckoutService) Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CheckoutResponse), args.Error(1)
}

type mockCartService struct{ mock.Mock }

func (m *mockCartService) GetCart(ctx context.Context, sessionID string) (*response.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CartResponse), args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, sessionID string, req *request.AddCartItemRequest) (*response.CartResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CartResponse), args.Error(1)
}

func (m *mockCartService) UpdateItem(ctx context.Context, sessionID string, productID int64, req *request.UpdateCartItemRequest) (*response.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CartResponse), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*response.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CartResponse), args.Error(1)
}

func (m *mockCartService) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockCartService) ApplyCoupon(ctx context.Context, sessionID string, req *request.ApplyCouponRequest) (*cart.Coupon, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Coupon), args.Error(1)
}

func (m *mockCartService) Checkout(ctx context.Context, sessionID string, req *request.CartCheckoutRequest) (*response.CartCheckoutResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CartCheckoutResponse), args.Error(1)
}
