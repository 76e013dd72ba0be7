// internal/service/catalog/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/service/catalog/domain"
)

// GormProductRepository 是 ProductRepository 的 GORM 实现。
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository 创建一个新的 GORM 仓储实例。
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).Create(FromDomainProduct(product)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrSlugExists
	}
	return err
}

// Update 只更新商品基础字段，规格由独立流程维护。
func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	model := FromDomainProduct(product)
	err := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"slug":        model.Slug,
			"description": model.Description,
			"images":      model.Images,
			"status":      model.Status,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrSlugExists
	}
	return err
}

// Delete 在一个事务中删除商品及其全部规格。
func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&VariantModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ProductModel{}, "id = ?", id).Error
	})
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Preload("Variants").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return ToDomainProduct(&model), nil
}

func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Preload("Variants").Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return ToDomainProduct(&model), nil
}

// FindVariantBySKU 预加载商品，填充反规范化的商品标题。
func (r *GormProductRepository) FindVariantBySKU(ctx context.Context, sku string) (*domain.Variant, error) {
	var model VariantModel
	err := r.db.WithContext(ctx).Preload("Product").Where("sku = ?", sku).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVariantNotFound
		}
		return nil, err
	}
	variant := toDomainVariant(&model)
	variant.ProductTitle = model.Product.Title
	return variant, nil
}

func (r *GormProductRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&ProductModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR slug LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*ProductModel
	err := query.Preload("Variants").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, len(models))
	for i, m := range models {
		products[i] = ToDomainProduct(m)
	}
	return products, total, nil
}
