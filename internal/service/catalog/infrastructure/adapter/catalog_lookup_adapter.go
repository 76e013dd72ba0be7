// internal/service/catalog/infrastructure/adapter/catalog_lookup_adapter.go
package adapter

import (
	"context"

	"github.com/pkg/errors"

	cartport "storefront/internal/service/cart/domain/port"
	"storefront/internal/service/catalog/domain"
)

// CatalogLookupAdapter 把目录仓储适配为购物车侧的 CatalogLookup 端口。
type CatalogLookupAdapter struct {
	productRepo domain.ProductRepository
}

// NewCatalogLookupAdapter 创建一个新的目录查询适配器。
func NewCatalogLookupAdapter(repo domain.ProductRepository) *CatalogLookupAdapter {
	return &CatalogLookupAdapter{productRepo: repo}
}

// FindBySKU 实现 cart 的 port.CatalogLookup。
func (a *CatalogLookupAdapter) FindBySKU(ctx context.Context, sku string) (*cartport.Variant, error) {
	variant, err := a.productRepo.FindVariantBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, domain.ErrVariantNotFound) {
			return nil, cartport.ErrVariantNotFound
		}
		return nil, err
	}
	return &cartport.Variant{
		SKU:       variant.SKU,
		Title:     variant.ProductTitle,
		UnitPrice: variant.Price,
		Currency:  variant.Currency,
		Stock:     variant.Stock,
	}, nil
}
