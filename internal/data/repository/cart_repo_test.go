package repository

import (
	"context"
	"testing"
	"time"

	"food-marketplace/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartRepository(time.Hour)

	missing, err := repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := cart.New("s1")
	require.NoError(t, c.Add(cart.Product{ID: 1, Name: "Arepa", Price: 4000, Available: true}, 2))
	require.NoError(t, repo.Save(ctx, c))

	// stored copies are detached from the caller's value
	c.Clear()

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 8000.0, loaded.Total())

	other, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Delete(ctx, "s1"))
	gone, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryCartRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartRepository(20 * time.Millisecond)

	require.NoError(t, repo.Save(ctx, cart.New("s1")))

	require.Eventually(t, func() bool {
		expired, err := repo.Get(ctx, "s1")
		return err == nil && expired == nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCartRepository_ReadDoesNotExtendTTL(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCartRepository(50 * time.Millisecond).(*memoryCartRepository)

	require.NoError(t, repo.Save(ctx, cart.New("s1")))
	saved := repo.carts.Get(cartKey("s1"))
	require.NotNil(t, saved)
	expiresAt := saved.ExpiresAt()

	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	again := repo.carts.Get(cartKey("s1"))
	require.NotNil(t, again)
	assert.Equal(t, expiresAt, again.ExpiresAt())
}

func TestMemoryCartRepository_NoTTL(t *testing.T) {
	repo := NewMemoryCartRepository(0).(*memoryCartRepository)
	require.NoError(t, repo.Save(context.Background(), cart.New("s1")))

	item := repo.carts.Get(cartKey("s1"))
	require.NotNil(t, item)
	assert.True(t, item.ExpiresAt().IsZero())
}
