// internal/service/promotion/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoModel 对应数据库中的 promo 表。
type PromoModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Code      string          `gorm:"size:64;uniqueIndex"`
	Kind      string          `gorm:"size:16"`
	Value     decimal.Decimal `gorm:"type:decimal(10,2)"`
	StartsAt  time.Time
	EndsAt    time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (PromoModel) TableName() string {
	return "promos"
}
