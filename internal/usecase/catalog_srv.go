package usecase

import (
	"context"
	"math"
	"strings"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	AddProduct(ctx context.Context, req *request.AddProductRequest) (*response.ProductResponse, error)
	RemoveProduct(ctx context.Context, productID int64) (*response.RemovedProduct, error)
	ListProducts(ctx context.Context, req *request.ListProductsRequest) ([]response.ProductResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) AddProduct(ctx context.Context, req *request.AddProductRequest) (*response.ProductResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add product validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.ValidationFields("Datos del producto inválidos", errs)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("El nombre del producto es requerido")
	}
	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if req.Stock > math.MaxInt32 {
		return nil, apperror.Validation("El stock excede el máximo permitido")
	}

	// 2. Establishment harus ada dengan role ESTABLISHMENT
	owner, err := s.repo.User.FindByID(ctx, req.EstablishmentID)
	if err != nil {
		s.log.Error("Failed to find establishment", zap.Error(err), zap.Int64("establishment_id", req.EstablishmentID))
		return nil, apperror.Store("failed to find establishment", err)
	}
	if owner == nil || owner.Role != entity.RoleEstablishment {
		return nil, apperror.NotFound("Establecimiento no encontrado")
	}

	// 3. Insert
	product := &entity.Product{
		EstablishmentID:   owner.ID,
		EstablishmentName: owner.Name,
		Name:              name,
		Description:       utils.NilIfBlank(req.Description),
		Price:             price,
		Stock:             req.Stock,
		Category:          utils.NilIfBlank(req.Category),
		IsActive:          true,
	}
	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, apperror.Store("failed to create product", err)
	}

	s.log.Info("Product added",
		zap.Int64("product_id", product.ID),
		zap.Int64("establishment_id", product.EstablishmentID),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) RemoveProduct(ctx context.Context, productID int64) (*response.RemovedProduct, error) {
	if productID <= 0 {
		return nil, apperror.Validation("productId debe ser un entero positivo")
	}

	deleted, err := s.repo.Product.Delete(ctx, productID)
	if err != nil {
		return nil, apperror.Store("failed to delete product", err)
	}
	if deleted == nil {
		return nil, apperror.NotFound("Producto no encontrado")
	}

	s.log.Info("Product removed", zap.Int64("product_id", deleted.ID), zap.String("name", deleted.Name))

	return &response.RemovedProduct{ID: deleted.ID, Name: deleted.Name}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, req *request.ListProductsRequest) ([]response.ProductResponse, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, apperror.Validation("min_price no puede ser mayor que max_price")
	}

	filter := entity.ProductFilter{
		EstablishmentID: req.EstablishmentID,
		ActiveOnly:      req.ActiveOnly,
		Category:        req.Category,
		Search:          req.SearchTerm,
		MinPrice:        req.MinPrice,
		MaxPrice:        req.MaxPrice,
	}

	products, err := s.repo.Product.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, apperror.Store("failed to list products", err)
	}

	return response.ProductsToResponse(products), nil
}

// products.price is NUMERIC(12,2) with CHECK (price > 0).
const maxProductPrice = 9999999999.99

func normalizePrice(price float64) (float64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperror.Validation("El precio debe ser un número válido")
	}
	rounded := math.Round(price*100) / 100
	if rounded < 0.01 {
		return 0, apperror.Validation("El precio debe ser de al menos 0.01")
	}
	if rounded > maxProductPrice {
		return 0, apperror.Validation("El precio excede el máximo permitido")
	}
	return rounded, nil
}
