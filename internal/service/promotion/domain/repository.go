// internal/service/promotion/domain/repository.go
package domain

import (
	"context"
	"time"
)

// PromoRepository 定义了促销规则的持久化接口。
// 它位于领域层，由基础设施层实现。
type PromoRepository interface {
	Create(ctx context.Context, promo *Promo) error
	Update(ctx context.Context, promo *Promo) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*Promo, error)
	// FindByCode 按大写促销码精确查找，不关心有效窗口。
	FindByCode(ctx context.Context, code string) (*Promo, error)
	// FindActiveByCode 只返回在 now 时刻处于有效窗口且启用的促销；
	// 过期与不存在对调用方不可区分，都返回 ErrPromoNotFound。
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*Promo, error)
	// List 按创建时间倒序分页，返回当页数据与总数。
	List(ctx context.Context, offset, limit int) ([]*Promo, int64, error)
}
