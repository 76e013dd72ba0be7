// internal/service/cart/infrastructure/gorm_model.go
package infrastructure

import (
	"database/sql"
	"time"
)

// CartModel 对应数据库中的 carts 表。
// Token 是对外凭证，唯一索引保证不可重复。
type CartModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Token     string `gorm:"size:36;uniqueIndex"`
	PromoCode sql.NullString `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItemModel `gorm:"foreignKey:CartID"`
}

// TableName 指定 GORM 应该使用的表名。
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 对应数据库中的 cart_items 表。
// (cart_id, sku) 复合唯一索引保证一个 SKU 在一个购物车中至多一行。
type CartItemModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CartID    string `gorm:"size:36;uniqueIndex:idx_cart_sku"`
	SKU       string `gorm:"column:sku;size:64;uniqueIndex:idx_cart_sku"`
	Title     string `gorm:"size:255"`
	UnitPrice int64
	Currency  string `gorm:"size:8"`
	Qty       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (CartItemModel) TableName() string {
	return "cart_items"
}
