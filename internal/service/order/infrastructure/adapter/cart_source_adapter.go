// internal/service/order/infrastructure/adapter/cart_source_adapter.go
package adapter

import (
	"context"

	"github.com/pkg/errors"

	cartdomain "storefront/internal/service/cart/domain"
	"storefront/internal/service/order/domain/port"
)

// CartSourceAdapter 把购物车仓储适配为结账侧的 CartSource 端口。
// 结账读取的是存储中的购物车与存储的促销码，不经过缓存：
// 定价必须基于权威数据。
type CartSourceAdapter struct {
	cartRepo cartdomain.CartRepository
}

// NewCartSourceAdapter 创建一个新的购物车读取适配器。
func NewCartSourceAdapter(repo cartdomain.CartRepository) *CartSourceAdapter {
	return &CartSourceAdapter{cartRepo: repo}
}

// Load 实现 order 的 port.CartSource。
func (a *CartSourceAdapter) Load(ctx context.Context, cartID string) (*port.Cart, error) {
	cart, err := a.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, cartdomain.ErrCartNotFound) {
			return nil, port.ErrCartNotFound
		}
		return nil, err
	}

	items := make([]port.CartLine, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = port.CartLine{
			SKU:       item.SKU,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
			Qty:       item.Qty,
		}
	}
	return &port.Cart{ID: cart.ID, PromoCode: cart.PromoCode, Items: items}, nil
}
