// internal/service/catalog/application/service_test.go
package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"storefront/internal/service/catalog/domain"
)

type fakeProductRepo struct {
	products map[string]*domain.Product // keyed by ID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	for _, p := range r.products {
		if p.Slug == product.Slug {
			return domain.ErrSlugExists
		}
	}
	cp := *product
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			cp := *product
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) FindVariantBySKU(_ context.Context, sku string) (*domain.Variant, error) {
	for _, product := range r.products {
		for _, v := range product.Variants {
			if v.SKU == sku {
				cp := v
				cp.ProductTitle = product.Title
				return &cp, nil
			}
		}
	}
	return nil, domain.ErrVariantNotFound
}

func (r *fakeProductRepo) List(_ context.Context, filter domain.ListFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, product := range r.products {
		if filter.Status != "" && product.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(product.Title), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *product
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func newTestCatalogService(repo *fakeProductRepo) *CatalogService {
	return NewCatalogService(repo, noop.NewTracerProvider().Tracer("test"))
}

func headphonesRequest() *ProductRequest {
	return &ProductRequest{
		Title:       "Wireless Headphones",
		Slug:        "wireless-headphones",
		Description: "Over-ear, noise cancelling.",
		Status:      "active",
		Variants: []VariantRequest{
			{SKU: "WH-BLK", Options: map[string]string{"color": "black"}, Price: 29900, Currency: "USD", Stock: 50},
			{SKU: "WH-WHT", Options: map[string]string{"color": "white"}, Price: 29900, Currency: "USD", Stock: 35},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, headphonesRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	require.Len(t, view.Variants, 2)
	assert.NotEmpty(t, view.Variants[0].ID)

	// slug 重复被拒绝
	_, err = svc.CreateProduct(ctx, headphonesRequest())
	assert.ErrorIs(t, err, domain.ErrSlugExists)
}

func TestGetProductBySlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, headphonesRequest())
	require.NoError(t, err)

	view, err := svc.GetProductBySlug(ctx, "wireless-headphones")
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)

	_, err = svc.GetProductBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, headphonesRequest())
	require.NoError(t, err)

	status := "archived"
	view, err := svc.UpdateProduct(ctx, created.ID, &ProductUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "archived", view.Status)
	assert.Equal(t, created.Title, view.Title)
	// 规格不受基础字段更新影响
	assert.Len(t, view.Variants, 2)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, headphonesRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), domain.ErrProductNotFound)
}

func TestGetProducts_FilterAndPagination(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, headphonesRequest())
	require.NoError(t, err)

	draft := headphonesRequest()
	draft.Title = "Fitness Watch"
	draft.Slug = "fitness-watch"
	draft.Status = "draft"
	draft.Variants = nil
	_, err = svc.CreateProduct(ctx, draft)
	require.NoError(t, err)

	view, err := svc.GetProducts(ctx, 1, 10, "active", "")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "wireless-headphones", view.Products[0].Slug)

	view, err = svc.GetProducts(ctx, 1, 10, "", "fitness")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "fitness-watch", view.Products[0].Slug)

	view, err = svc.GetProducts(ctx, 1, 10, "", "")
	require.NoError(t, err)
	assert.Len(t, view.Products, 2)
	assert.Equal(t, int64(2), view.Pagination.Total)
}
