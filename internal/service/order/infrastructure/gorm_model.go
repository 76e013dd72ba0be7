// internal/service/order/infrastructure/gorm_model.go
package infrastructure

import (
	"database/sql"
	"time"
)

// OrderModel 对应数据库中的 orders 表。
// CartID 上的唯一索引是整个系统最关键的并发约束：
// 两次并发结账竞争同一购物车时，数据库拒绝后写入者。
type OrderModel struct {
	ID         string         `gorm:"primaryKey;size:36"`
	CartID     string         `gorm:"size:36;uniqueIndex"`
	PromoCode  sql.NullString `gorm:"size:64"`
	Subtotal   int64
	Discount   int64
	GrandTotal int64
	Status     string `gorm:"size:16;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName 指定 GORM 应该使用的表名。
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 对应数据库中的 order_items 表。
// 行是结账时刻的不可变快照，创建后不再更新。
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"size:36;index"`
	SKU       string `gorm:"column:sku;size:64"`
	Title     string `gorm:"size:255"`
	UnitPrice int64
	Currency  string `gorm:"size:8"`
	Qty       int
	LineTotal int64
	CreatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (OrderItemModel) TableName() string {
	return "order_items"
}
