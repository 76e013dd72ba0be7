// internal/service/catalog/domain/repository.go
package domain

import "context"

// ListFilter 是商品列表查询的过滤条件。
type ListFilter struct {
	Status string // 空串表示不过滤
	Search string // 对标题、描述、slug 做模糊匹配
	Offset int
	Limit  int
}

// ProductRepository 定义了商品聚合的持久化接口。
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	// FindVariantBySKU 解析 SKU，返回带商品标题的规格快照。
	FindVariantBySKU(ctx context.Context, sku string) (*Variant, error)
	// List 按创建时间倒序分页，返回当页数据与总数。
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)
}
