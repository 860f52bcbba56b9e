package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

const catalogKey = "catalog:products"

type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) GetAll(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// Stale or corrupt payload: treat as a miss.
		return nil, false, nil
	}
	return products, true, nil
}

func (c *RedisCatalogCache) SetAll(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err()
}

var _ usecase.CatalogCache = (*RedisCatalogCache)(nil)
