package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepoGetProducts(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewMySQLCatalogRepo(db)
	ctx := context.Background()

	got, err := repo.GetProducts(ctx, []string{"prod-biko", "prod-leche", "prod-ghost"})
	require.NoError(t, err)
	require.Len(t, got, 2, "unknown ids are simply absent")

	byID := map[string]bool{}
	for _, p := range got {
		byID[p.ID] = true
	}
	assert.True(t, byID["prod-biko"])
	assert.True(t, byID["prod-leche"])
}

func TestCatalogRepoGetProductsEmptyIDs(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewMySQLCatalogRepo(db)

	got, err := repo.GetProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogRepoListProducts(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewMySQLCatalogRepo(db)

	got, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by category then name: Desserts before Rice Cakes.
	assert.Equal(t, "prod-leche", got[0].ID)
	assert.Equal(t, "prod-biko", got[1].ID)
	assert.Equal(t, "prod-sapin", got[2].ID)

	assert.True(t, got[1].Price.Equal(decimal.NewFromInt(150)))
	assert.True(t, got[1].IsBestSeller)
}
