// internal/service/promotion/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/service/promotion/domain"
)

// GormPromoRepository 是 PromoRepository 的 GORM 实现。
type GormPromoRepository struct {
	db *gorm.DB
}

// NewGormPromoRepository 创建一个新的 GORM 仓储实例。
func NewGormPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

func (r *GormPromoRepository) Create(ctx context.Context, promo *domain.Promo) error {
	return r.db.WithContext(ctx).Create(FromDomainPromo(promo)).Error
}

func (r *GormPromoRepository) Update(ctx context.Context, promo *domain.Promo) error {
	return r.db.WithContext(ctx).Save(FromDomainPromo(promo)).Error
}

func (r *GormPromoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PromoModel{}, "id = ?", id).Error
}

func (r *GormPromoRepository) FindByID(ctx context.Context, id string) (*domain.Promo, error) {
	var model PromoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPromoNotFound
		}
		return nil, err
	}
	return ToDomainPromo(&model), nil
}

func (r *GormPromoRepository) FindByCode(ctx context.Context, code string) (*domain.Promo, error) {
	var model PromoModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPromoNotFound
		}
		return nil, err
	}
	return ToDomainPromo(&model), nil
}

// FindActiveByCode 的有效窗口过滤在 SQL 层完成：
// active AND startsAt <= now < endsAt（半开区间）。
func (r *GormPromoRepository) FindActiveByCode(ctx context.Context, code string, now time.Time) (*domain.Promo, error) {
	var model PromoModel
	err := r.db.WithContext(ctx).
		Where("code = ? AND active = ? AND starts_at <= ? AND ends_at > ?", code, true, now, now).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPromoNotFound
		}
		return nil, err
	}
	return ToDomainPromo(&model), nil
}

func (r *GormPromoRepository) List(ctx context.Context, offset, limit int) ([]*domain.Promo, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PromoModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*PromoModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	promos := make([]*domain.Promo, len(models))
	for i, m := range models {
		promos[i] = ToDomainPromo(m)
	}
	return promos, total, nil
}
