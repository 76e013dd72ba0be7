// internal/service/cart/infrastructure/adapter/redis_cache.go
package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"storefront/internal/service/cart/domain"
	"storefront/internal/service/cart/domain/port"
)

const cartCacheTTL = 15 * time.Minute

// RedisCartCache 是 port.CartCache 的 Redis 实现。
// 缓存整个聚合的 JSON 序列化，写操作后由应用服务负责失效。
type RedisCartCache struct {
	client *redis.Client
}

// NewRedisCartCache 创建一个新的购物车缓存适配器。
func NewRedisCartCache(client *redis.Client) *RedisCartCache {
	return &RedisCartCache{client: client}
}

func cacheKey(token string) string {
	return "cart:" + token
}

func (c *RedisCartCache) Get(ctx context.Context, token string) (*domain.Cart, error) {
	data, err := c.client.Get(ctx, cacheKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, port.ErrCacheMiss
		}
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// 损坏的缓存视为未命中，由回源覆盖
		return nil, port.ErrCacheMiss
	}
	return &cart, nil
}

func (c *RedisCartCache) Set(ctx context.Context, token string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(token), data, cartCacheTTL).Err()
}

func (c *RedisCartCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, cacheKey(token)).Err()
}
