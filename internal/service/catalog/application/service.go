// internal/service/catalog/application/service.go
package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/pagination"
	"storefront/internal/service/catalog/domain"
)

// CatalogService 提供商品目录的查询与管理用例。
// 目录侧没有复杂不变量，唯一性（slug、sku）由存储层约束兜底。
type CatalogService struct {
	productRepo domain.ProductRepository
	tracer      trace.Tracer
}

// NewCatalogService 创建一个新的目录服务实例。
func NewCatalogService(repo domain.ProductRepository, tracer trace.Tracer) *CatalogService {
	return &CatalogService{productRepo: repo, tracer: tracer}
}

// GetProducts 分页返回商品列表，支持状态过滤与关键词搜索。
func (s *CatalogService) GetProducts(ctx context.Context, page, limit int, status, search string) (*ProductListView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProducts")
	defer span.End()

	page, limit = pagination.Normalize(page, limit)
	products, total, err := s.productRepo.List(ctx, domain.ListFilter{
		Status: status,
		Search: search,
		Offset: pagination.Offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	views := make([]*ProductView, len(products))
	for i, p := range products {
		views[i] = toView(p)
	}
	return &ProductListView{Products: views, Pagination: pagination.New(page, limit, total)}, nil
}

// GetProductBySlug 按 slug 查找商品。
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProductBySlug")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", slug))

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(product), nil
}

// GetProductByID 按 ID 查找商品。
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProductByID")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(product), nil
}

// CreateProduct 创建商品及其规格。
func (s *CatalogService) CreateProduct(ctx context.Context, req *ProductRequest) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.CreateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", req.Slug))

	product := &domain.Product{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Images:      req.Images,
		Status:      req.Status,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, domain.Variant{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			SKU:       v.SKU,
			Options:   v.Options,
			Price:     v.Price,
			Currency:  v.Currency,
			Stock:     v.Stock,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("slug", product.Slug).Int("variants", len(product.Variants)).Msg("product created")
	return toView(product), nil
}

// UpdateProduct 更新商品基础字段（不含规格）。
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *ProductUpdateRequest) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(product), nil
}

// DeleteProduct 删除商品及其规格。
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "catalog.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
