// internal/service/order/infrastructure/adapter/promo_resolver_adapter.go
package adapter

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"storefront/internal/service/order/domain/port"
	promodomain "storefront/internal/service/promotion/domain"
)

// PromoResolverAdapter 把促销仓储适配为结账侧的 PromoResolver 端口。
type PromoResolverAdapter struct {
	promoRepo promodomain.PromoRepository
}

// NewPromoResolverAdapter 创建一个新的促销解析适配器。
func NewPromoResolverAdapter(repo promodomain.PromoRepository) *PromoResolverAdapter {
	return &PromoResolverAdapter{promoRepo: repo}
}

// Resolve 实现 order 的 port.PromoResolver。
func (a *PromoResolverAdapter) Resolve(ctx context.Context, code string, now time.Time) (*port.ResolvedPromo, error) {
	promo, err := a.promoRepo.FindActiveByCode(ctx, promodomain.NormalizeCode(code), now)
	if err != nil {
		if errors.Is(err, promodomain.ErrPromoNotFound) {
			return nil, port.ErrPromoNotFound
		}
		return nil, err
	}
	return &port.ResolvedPromo{
		Code:     promo.Code,
		Discount: *promo.Discount(),
	}, nil
}
