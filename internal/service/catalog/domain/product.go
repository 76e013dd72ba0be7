// internal/service/catalog/domain/product.go
package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrSlugExists      = errors.New("product slug already exists")
	ErrSKUExists       = errors.New("variant sku already exists")
)

// Product 是商品聚合根，Slug 全局唯一。
type Product struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Images      []string
	Status      string // active | draft | archived
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant 是可购买的具体规格，SKU 全局唯一。
// Stock 是参考库存，购物车侧的检查是时点读取而非预占。
type Variant struct {
	ID           string
	ProductID    string
	ProductTitle string // 由仓储在加载时反规范化填充
	SKU          string
	Options      map[string]string
	Price        int64 // 最小货币单位
	Currency     string
	Stock        int
}
