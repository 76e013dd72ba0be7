// internal/service/catalog/infrastructure/gorm_model.go
package infrastructure

import "time"

// ProductModel 对应数据库中的 products 表。
type ProductModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255"`
	Slug        string `gorm:"size:255;uniqueIndex"`
	Description string `gorm:"type:text"`
	Images      string `gorm:"type:json"` // JSON 数组
	Status      string `gorm:"size:16;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []VariantModel `gorm:"foreignKey:ProductID"`
}

// TableName 指定 GORM 应该使用的表名。
func (ProductModel) TableName() string {
	return "products"
}

// VariantModel 对应数据库中的 variants 表。
type VariantModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;index"`
	SKU       string `gorm:"column:sku;size:64;uniqueIndex"`
	Options   string `gorm:"type:json"` // JSON 对象，如 {"color":"Black","size":"42mm"}
	Price     int64
	Currency  string `gorm:"size:8"`
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time

	Product ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName 指定 GORM 应该使用的表名。
func (VariantModel) TableName() string {
	return "variants"
}
