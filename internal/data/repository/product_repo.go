package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-marketplace/internal/data/entity"
	"food-marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Delete(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

// Create inserts the product and fills ID and CreatedAt
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (establishment_id, name, description, price, stock, category, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		product.EstablishmentID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.Int64("establishment_id", product.EstablishmentID),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT p.id, p.establishment_id, u.name, p.name, p.description, p.price,
		       p.stock, p.category, p.active, p.created_at
		FROM products p
		JOIN users u ON u.id = p.establishment_id
		WHERE p.id = $1
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.EstablishmentID,
		&product.EstablishmentName,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Category,
		&product.IsActive,
		&product.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("find product by ID %d: %w", id, err)
	}

	return &product, nil
}

// Delete hard-deletes the product and returns what was removed, or nil when nothing matched
func (r *productRepository) Delete(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
		RETURNING id, establishment_id, name
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.EstablishmentID, &product.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}

	r.log.Info("Product deleted", zap.Int64("product_id", id), zap.String("name", product.Name))
	return &product, nil
}

// List returns products joined with their establishment name, newest first.
// Establishment activity is not filtered.
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT p.id, p.establishment_id, u.name, p.name, p.description, p.price,
		       p.stock, p.category, p.active, p.created_at
		FROM products p
		JOIN users u ON u.id = p.establishment_id
		WHERE 1=1
	`)

	args := []interface{}{}
	argCount := 1

	if filter.EstablishmentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.establishment_id = $%d", argCount))
		args = append(args, *filter.EstablishmentID)
		argCount++
	}

	if filter.ActiveOnly {
		queryBuilder.WriteString(" AND p.active = TRUE")
	}

	if filter.Category != nil && *filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.category = $%d", argCount))
		args = append(args, *filter.Category)
		argCount++
	}

	if filter.Search != nil && *filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND (p.name ILIKE $%d ESCAPE '\' OR p.description ILIKE $%d ESCAPE '\')`, argCount, argCount))
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		argCount++
	}

	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.price >= $%d", argCount))
		args = append(args, *filter.MinPrice)
		argCount++
	}

	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.price <= $%d", argCount))
		args = append(args, *filter.MaxPrice)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list products", zap.Error(err), zap.Int("args", argCount-1))
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.EstablishmentID,
			&product.EstablishmentName,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.Category,
			&product.IsActive,
			&product.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
