// internal/service/promotion/infrastructure/adapter/promo_lookup_adapter.go
package adapter

import (
	"context"
	"time"

	"github.com/pkg/errors"

	cartport "storefront/internal/service/cart/domain/port"
	"storefront/internal/service/promotion/domain"
)

// PromoLookupAdapter 把促销仓储适配为购物车/结账侧的 PromoLookup 端口。
// "不存在"与"已过期/停用"在这里折叠为同一个错误，调用方无法区分。
type PromoLookupAdapter struct {
	promoRepo domain.PromoRepository
}

// NewPromoLookupAdapter 创建一个新的促销解析适配器。
func NewPromoLookupAdapter(repo domain.PromoRepository) *PromoLookupAdapter {
	return &PromoLookupAdapter{promoRepo: repo}
}

// FindActiveByCode 实现 cart 的 port.PromoLookup。
func (a *PromoLookupAdapter) FindActiveByCode(ctx context.Context, code string, now time.Time) (*cartport.ResolvedPromo, error) {
	promo, err := a.promoRepo.FindActiveByCode(ctx, domain.NormalizeCode(code), now)
	if err != nil {
		if errors.Is(err, domain.ErrPromoNotFound) {
			return nil, cartport.ErrPromoNotFound
		}
		return nil, err
	}
	return &cartport.ResolvedPromo{
		Code:     promo.Code,
		Discount: *promo.Discount(),
	}, nil
}
