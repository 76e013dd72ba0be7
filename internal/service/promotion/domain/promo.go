// internal/service/promotion/domain/promo.go
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/pricing"
)

var (
	ErrPromoNotFound   = errors.New("promo not found")
	ErrPromoCodeExists = errors.New("promo code already exists")
	ErrInvalidKind     = errors.New("promo kind must be percent or fixed")
	ErrInvalidValue    = errors.New("promo value out of range")
)

// Promo 是一条促销规则。Code 全局唯一且始终大写。
// 订单在结账时只保存 Code 的字符串快照，不持有对 Promo 的引用，
// 因此之后对促销规则的修改不会影响历史订单的金额。
type Promo struct {
	ID        string
	Code      string
	Kind      pricing.DiscountKind
	Value     decimal.Decimal // percent: 0–100（允许小数）；fixed: 最小货币单位金额
	StartsAt  time.Time
	EndsAt    time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPromo 是促销规则的工厂函数，负责校验折扣类型与数值范围。
func NewPromo(id, code string, kind pricing.DiscountKind, value decimal.Decimal, startsAt, endsAt time.Time, active bool) (*Promo, error) {
	switch kind {
	case pricing.KindPercent:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, ErrInvalidValue
		}
	case pricing.KindFixed:
		if value.IsNegative() {
			return nil, ErrInvalidValue
		}
	default:
		return nil, ErrInvalidKind
	}

	return &Promo{
		ID:       id,
		Code:     NormalizeCode(code),
		Kind:     kind,
		Value:    value,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Active:   active,
	}, nil
}

// ActiveAt 判断促销在给定时刻是否可用。
// 有效窗口是半开区间 [startsAt, endsAt)。
func (p *Promo) ActiveAt(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}

// Discount 把促销规则转换为定价引擎可消费的折扣。
func (p *Promo) Discount() *pricing.Discount {
	return &pricing.Discount{Kind: p.Kind, Value: p.Value}
}

// NormalizeCode 统一促销码的书写形式：大写、去首尾空白。
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
