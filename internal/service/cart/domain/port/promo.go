// internal/service/cart/domain/port/promo.go
package port

import (
	"context"
	"errors"
	"time"

	"storefront/internal/pricing"
)

// ErrPromoNotFound 同时覆盖"不存在"与"已过期/停用"两种情况，
// 调用方刻意无法区分二者。
var ErrPromoNotFound = errors.New("invalid or expired promo code")

// ResolvedPromo 是一个在查询时刻有效的促销折扣。
type ResolvedPromo struct {
	Code     string
	Discount pricing.Discount
}

// PromoLookup 是促销解析的出站端口。
type PromoLookup interface {
	// FindActiveByCode 按大写促销码解析在 now 时刻有效的促销。
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*ResolvedPromo, error)
}
