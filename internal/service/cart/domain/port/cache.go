// internal/service/cart/domain/port/cache.go
package port

import (
	"context"
	"errors"

	"storefront/internal/service/cart/domain"
)

var ErrCacheMiss = errors.New("cart not in cache")

// CartCache 是购物车读路径的旁路缓存端口。
// 缓存的是聚合本身而非定价快照：促销有效性随时间变化，
// 总额必须在每次读取时重新计算。
type CartCache interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Set(ctx context.Context, token string, cart *domain.Cart) error
	Delete(ctx context.Context, token string) error
}
