// internal/service/order/domain/repository.go
package domain

import "context"

// OrderRepository 定义了订单聚合的持久化接口。
type OrderRepository interface {
	// Create 在一个事务中原子持久化订单与全部行项目，
	// 成功后把存储层生成的 CreatedAt/UpdatedAt 回写到 order。
	// cart_id 唯一约束冲突时返回 ErrDuplicateCart，调用方应
	// 回读并返回已存在的订单，而不是把冲突暴露为用户错误。
	Create(ctx context.Context, order *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)
	// FindByCartID 是结账幂等检查的入口。
	FindByCartID(ctx context.Context, cartID string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	// List 按创建时间倒序分页。
	List(ctx context.Context, offset, limit int) ([]*Order, error)
	Count(ctx context.Context) (int64, error)
}
