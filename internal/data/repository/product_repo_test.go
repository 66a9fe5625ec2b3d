package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"food-marketplace/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func productRow(id int64, name string, createdAt time.Time) []any {
	category := "Comida"
	return []any{id, int64(4), "La Esquina", name, nil, 12000.0, 3, &category, true, createdAt}
}

func TestProductRepository_ListQuery(t *testing.T) {
	establishment := int64(4)
	category := "Bebidas"
	search := "arepa"
	minPrice, maxPrice := 1000.0, 5000.0

	tests := []struct {
		name     string
		filter   entity.ProductFilter
		contains []string
		excludes []string
		args     []any
	}{
		{
			name:     "no filters",
			filter:   entity.ProductFilter{},
			contains: []string{"JOIN users u ON u.id = p.establishment_id", "ORDER BY p.created_at DESC"},
			excludes: []string{"p.active = TRUE", "u.active", "ILIKE"},
			args:     []any{},
		},
		{
			name:     "active only never filters establishment activity",
			filter:   entity.ProductFilter{ActiveOnly: true},
			contains: []string{" AND p.active = TRUE"},
			excludes: []string{"u.active"},
			args:     []any{},
		},
		{
			name:   "search matches name or description case-insensitively",
			filter: entity.ProductFilter{Search: &search},
			contains: []string{
				`(p.name ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\')`,
			},
			args: []any{"%arepa%"},
		},
		{
			name: "all filters keep argument order",
			filter: entity.ProductFilter{
				EstablishmentID: &establishment,
				ActiveOnly:      true,
				Category:        &category,
				Search:          &search,
				MinPrice:        &minPrice,
				MaxPrice:        &maxPrice,
			},
			contains: []string{
				"p.establishment_id = $1",
				"p.category = $2",
				"p.name ILIKE $3",
				"p.price >= $4",
				"p.price <= $5",
			},
			args: []any{int64(4), "Bebidas", "%arepa%", 1000.0, 5000.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			db := new(mockDB)
			db.On("Query", mock.MatchedBy(func(sql string) bool {
				captured = sql
				return true
			}), tt.args).Return(newFakeRows(), nil)

			repo := NewProductRepository(db, zaptest.NewLogger(t))
			products, err := repo.List(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.Empty(t, products)
			for _, fragment := range tt.contains {
				assert.Contains(t, captured, fragment)
			}
			for _, fragment := range tt.excludes {
				assert.NotContains(t, captured, fragment)
			}
			assert.True(t, strings.HasSuffix(strings.TrimSpace(captured), "ORDER BY p.created_at DESC, p.id DESC"))
			db.AssertExpectations(t)
		})
	}
}

func TestProductRepository_ListEscapesWildcards(t *testing.T) {
	search := `50%_off\`
	db := new(mockDB)
	db.On("Query", mock.Anything, []any{`%50\%\_off\\%`}).Return(newFakeRows(), nil)

	repo := NewProductRepository(db, zaptest.NewLogger(t))
	_, err := repo.List(context.Background(), entity.ProductFilter{Search: &search})

	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestProductRepository_ListScansRows(t *testing.T) {
	newer := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	db := new(mockDB)
	db.On("Query", mock.Anything, mock.Anything).Return(newFakeRows(
		productRow(2, "Bandeja", newer),
		productRow(1, "Limonada", older),
	), nil)

	repo := NewProductRepository(db, zaptest.NewLogger(t))
	products, err := repo.List(context.Background(), entity.ProductFilter{})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Bandeja", products[0].Name)
	assert.Equal(t, "La Esquina", products[0].EstablishmentName)
	assert.Nil(t, products[0].Description)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Comida", *products[0].Category)
	assert.Equal(t, 12000.0, products[1].Price)
}

func TestProductRepository_ListQueryError(t *testing.T) {
	db := new(mockDB)
	db.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("conn reset"))

	repo := NewProductRepository(db, zaptest.NewLogger(t))
	_, err := repo.List(context.Background(), entity.ProductFilter{})

	assert.ErrorContains(t, err, "list products")
}

func TestProductRepository_Delete(t *testing.T) {
	t.Run("returns removed product", func(t *testing.T) {
		db := new(mockDB)
		db.On("QueryRow", mock.MatchedBy(func(sql string) bool {
			return strings.Contains(sql, "DELETE FROM products") && strings.Contains(sql, "RETURNING id, establishment_id, name")
		}), []any{int64(9)}).Return(fakeRow{values: []any{int64(9), int64(4), "Empanada"}})

		repo := NewProductRepository(db, zaptest.NewLogger(t))
		deleted, err := repo.Delete(context.Background(), 9)

		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "Empanada", deleted.Name)
	})

	t.Run("nothing matched", func(t *testing.T) {
		db := new(mockDB)
		db.On("QueryRow", mock.Anything, []any{int64(9)}).Return(fakeRow{err: pgx.ErrNoRows})

		repo := NewProductRepository(db, zaptest.NewLogger(t))
		deleted, err := repo.Delete(context.Background(), 9)

		require.NoError(t, err)
		assert.Nil(t, deleted)
	})
}
