// internal/service/cart/domain/port/catalog.go
package port

import (
	"context"
	"errors"
)

var ErrVariantNotFound = errors.New("product variant not found")

// Variant 是目录侧暴露给购物车的商品快照。
// Stock 是一次性读取的参考值，不是预占：两次并发加购
// 可能同时通过检查联合超卖，这是游客购物车接受的弱一致性。
type Variant struct {
	SKU       string
	Title     string
	UnitPrice int64
	Currency  string
	Stock     int
}

// CatalogLookup 是目录查询的出站端口。
type CatalogLookup interface {
	// FindBySKU 解析 SKU；不存在时返回 ErrVariantNotFound。
	FindBySKU(ctx context.Context, sku string) (*Variant, error)
}
