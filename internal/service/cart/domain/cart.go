// internal/service/cart/domain/cart.go
package domain

import (
	"errors"
	"time"

	"storefront/internal/pricing"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrLineItemNotFound  = errors.New("item not found in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cannot apply promo to empty cart")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// LineItem 是购物车中的一行：SKU 在一个购物车中至多出现一次，
// 重复加购时数量合并。标题与单价在加购时从目录反规范化拷贝，
// 之后目录的改价不影响已在车中的行。
type LineItem struct {
	SKU       string
	Title     string
	UnitPrice int64 // 最小货币单位
	Currency  string
	Qty       int
}

// Cart 是游客购物车聚合。Token 是对外的不可猜测凭证，
// ID 是内部标识，结账以 ID 为幂等键。
type Cart struct {
	ID        string
	Token     string
	Items     []LineItem
	PromoCode string // 空串表示未应用促销
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart 创建一个空购物车。购物车可以合法地长期保持零行状态。
func NewCart(id, token string) *Cart {
	return &Cart{ID: id, Token: token}
}

// FindItem 按 SKU 查找行项目。
func (c *Cart) FindItem(sku string) (*LineItem, bool) {
	for i := range c.Items {
		if c.Items[i].SKU == sku {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// IsEmpty 判断购物车是否没有任何行项目。
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Lines 把行项目转换为定价引擎的输入。
func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, len(c.Items))
	for i, item := range c.Items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Qty: item.Qty}
	}
	return lines
}
