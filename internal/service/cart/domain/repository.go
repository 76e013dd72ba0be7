// internal/service/cart/domain/repository.go
package domain

import "context"

// CartRepository 定义了购物车聚合的持久化接口。
// 除结账外的所有操作都是单记录读改写，接受 last-writer-wins。
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	// FindByToken 按对外凭证加载购物车（含全部行项目）。
	FindByToken(ctx context.Context, token string) (*Cart, error)
	// FindByID 按内部 ID 加载购物车，结账路径使用。
	FindByID(ctx context.Context, id string) (*Cart, error)
	// UpsertItem 创建或覆盖一行（以 cartID+SKU 为键）。
	UpsertItem(ctx context.Context, cartID string, item LineItem) error
	DeleteItem(ctx context.Context, cartID, sku string) error
	// SavePromoCode 覆盖存储的促销码；空串表示清除。
	SavePromoCode(ctx context.Context, cartID, code string) error
}
