// internal/service/order/domain/order.go
package domain

import (
	"errors"
	"time"

	"storefront/internal/pricing"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cannot create order from empty cart")
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrDuplicateCart 由仓储在 cart_id 唯一约束冲突时返回，
	// 是并发结账的唯一正确性保障。
	ErrDuplicateCart = errors.New("order already exists for cart")
)

// Status 定义了订单的生命周期状态。
// 状态之间没有流转图限制，任意状态可以改为任意状态（刻意的简化）。
type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// ValidStatus 校验状态取值是否在白名单内。
func ValidStatus(s Status) bool {
	switch s {
	case StatusCreated, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// LineItem 是订单行的不可变快照：全部字段在结账时从购物车
// 拷贝，之后绝不回读目录。LineTotal = UnitPrice × Qty。
type LineItem struct {
	SKU       string
	Title     string
	UnitPrice int64
	Currency  string
	Qty       int
	LineTotal int64
}

// Order 是订单聚合根。CartID 上的唯一约束保证一个购物车
// 在系统生命周期内至多产生一个订单。除 Status 外全部字段
// 在创建后不可变。
type Order struct {
	ID         string
	CartID     string
	PromoCode  string // 结账时存储的促销码字符串快照，可为空
	Subtotal   int64
	Discount   int64
	GrandTotal int64
	Status     Status
	Items      []LineItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder 是订单的工厂函数：把定价结果与行快照固化为聚合，
// 初始状态恒为 created。
func NewOrder(id, cartID, promoCode string, totals pricing.Totals, items []LineItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return &Order{
		ID:         id,
		CartID:     cartID,
		PromoCode:  promoCode,
		Subtotal:   totals.Subtotal,
		Discount:   totals.Discount,
		GrandTotal: totals.GrandTotal,
		Status:     StatusCreated,
		Items:      items,
	}, nil
}
