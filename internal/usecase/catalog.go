package usecase

import (
	"context"
	"log/slog"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
)

// Catalog serves the public product listing through a read-through cache.
type Catalog struct {
	store CatalogStore
	cache CatalogCache
	log   *slog.Logger
}

func NewCatalog(store CatalogStore, cache CatalogCache, log *slog.Logger) *Catalog {
	return &Catalog{store: store, cache: cache, log: log}
}

func (uc *Catalog) List(ctx context.Context) ([]domain.Product, error) {
	if products, ok, err := uc.cache.GetAll(ctx); err != nil {
		uc.log.Warn("catalog cache read failed", "err", err)
	} else if ok {
		return products, nil
	}

	products, err := uc.store.ListProducts(ctx)
	if err != nil {
		return nil, dependency("list products", err)
	}
	if err := uc.cache.SetAll(ctx, products); err != nil {
		uc.log.Warn("catalog cache write failed", "err", err)
	}
	return products, nil
}
