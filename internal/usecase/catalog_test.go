package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

type fakeCatalogCache struct {
	products []domain.Product
	getErr   error
	setErr   error
	sets     int
}

func (f *fakeCatalogCache) GetAll(context.Context) ([]domain.Product, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	if f.products == nil {
		return nil, false, nil
	}
	return f.products, true, nil
}

func (f *fakeCatalogCache) SetAll(_ context.Context, products []domain.Product) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.products = products
	return nil
}

func TestCatalogListCacheMiss(t *testing.T) {
	store := &fakeCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Classic Biko", Price: money("150")},
	}}
	cache := &fakeCatalogCache{}
	uc := NewCatalog(store, cache, slog.Default())

	products, err := uc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, cache.sets, "miss must populate the cache")
}

func TestCatalogListCacheHit(t *testing.T) {
	store := &fakeCatalog{err: errors.New("db down")}
	cache := &fakeCatalogCache{products: []domain.Product{{ID: "p1", Name: "Classic Biko"}}}
	uc := NewCatalog(store, cache, slog.Default())

	products, err := uc.List(context.Background())

	require.NoError(t, err, "cache hit must not touch the store")
	assert.Len(t, products, 1)
}

func TestCatalogListStoreFailure(t *testing.T) {
	store := &fakeCatalog{err: errors.New("db down")}
	cache := &fakeCatalogCache{getErr: errors.New("redis down")}
	uc := NewCatalog(store, cache, slog.Default())

	_, err := uc.List(context.Background())

	var dep *DependencyError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, "db down", dep.Error())
}

func TestCatalogListCacheWriteFailureIsNotFatal(t *testing.T) {
	store := &fakeCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Classic Biko", Price: money("150")},
	}}
	cache := &fakeCatalogCache{setErr: errors.New("redis down")}
	uc := NewCatalog(store, cache, slog.Default())

	products, err := uc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
}
