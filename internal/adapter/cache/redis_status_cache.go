package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

type statusPayload struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func statusKey(orderID string) string { return "order:status:" + orderID }

func (c *RedisStatusCache) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, payment domain.PaymentStatus) error {
	raw, err := json.Marshal(statusPayload{Status: string(status), PaymentStatus: string(payment)})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statusKey(orderID), raw, c.ttl).Err()
}

func (c *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (domain.OrderStatus, domain.PaymentStatus, bool, error) {
	raw, err := c.rdb.Get(ctx, statusKey(orderID)).Bytes()
	if err == redis.Nil {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	var p statusPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", "", false, nil
	}
	return domain.OrderStatus(p.Status), domain.PaymentStatus(p.PaymentStatus), true, nil
}

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
