// internal/service/order/domain/port/ports.go
package port

import (
	"context"
	"errors"
	"time"

	"storefront/internal/pricing"
	"storefront/internal/service/order/domain"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrPromoNotFound = errors.New("invalid or expired promo code")
)

// CartLine 是结账时从购物车侧读到的一行。
type CartLine struct {
	SKU       string
	Title     string
	UnitPrice int64
	Currency  string
	Qty       int
}

// Cart 是结账视角的购物车快照：内部 ID、存储的促销码与行项目。
type Cart struct {
	ID        string
	PromoCode string
	Items     []CartLine
}

// CartSource 是购物车读取的出站端口，结账按内部 ID 加载。
type CartSource interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
}

// ResolvedPromo 是一个在查询时刻有效的促销折扣。
type ResolvedPromo struct {
	Code     string
	Discount pricing.Discount
}

// PromoResolver 是促销解析的出站端口。结账用它对存储的促销码
// 做实时重验：解析失败时折扣静默归零，而不是拒绝结账。
type PromoResolver interface {
	Resolve(ctx context.Context, code string, now time.Time) (*ResolvedPromo, error)
}

// EventProducer 是订单领域事件的出站端口。
// 事件发布是尽力而为：失败记日志，绝不使结账失败。
type EventProducer interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}
