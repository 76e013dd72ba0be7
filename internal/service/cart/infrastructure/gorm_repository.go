// internal/service/cart/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/service/cart/domain"
)

// GormCartRepository 是 CartRepository 的 GORM 实现。
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository 创建一个新的 GORM 仓储实例。
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Create(FromDomainCart(cart)).Error
}

func (r *GormCartRepository) FindByToken(ctx context.Context, token string) (*domain.Cart, error) {
	var model CartModel
	err := r.db.WithContext(ctx).Preload("Items").Where("token = ?", token).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return ToDomainCart(&model), nil
}

func (r *GormCartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	var model CartModel
	err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return ToDomainCart(&model), nil
}

// UpsertItem 以 (cart_id, sku) 为键写入一行：
// 已存在则覆盖数量与反规范化字段，不存在则插入。
func (r *GormCartRepository) UpsertItem(ctx context.Context, cartID string, item domain.LineItem) error {
	model := fromDomainItem(cartID, item)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty", "title", "unit_price", "currency", "updated_at"}),
	}).Create(model).Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, sku string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND sku = ?", cartID, sku).
		Delete(&CartItemModel{}).Error
}

// SavePromoCode 覆盖促销码；空串写 NULL。
func (r *GormCartRepository) SavePromoCode(ctx context.Context, cartID, code string) error {
	var value interface{}
	if code != "" {
		value = code
	}
	return r.db.WithContext(ctx).
		Model(&CartModel{}).
		Where("id = ?", cartID).
		Update("promo_code", value).Error
}
