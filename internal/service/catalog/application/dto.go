// internal/service/catalog/application/dto.go
package application

import (
	"time"

	"storefront/internal/pkg/pagination"
	"storefront/internal/service/catalog/domain"
)

// VariantRequest 是创建商品时的规格输入。
type VariantRequest struct {
	SKU      string            `json:"sku"`
	Options  map[string]string `json:"options"`
	Price    int64             `json:"price"`
	Currency string            `json:"currency"`
	Stock    int               `json:"stock"`
}

// ProductRequest 是创建商品的请求体。
type ProductRequest struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Images      []string         `json:"images"`
	Status      string           `json:"status"`
	Variants    []VariantRequest `json:"variants"`
}

// ProductUpdateRequest 是更新商品的请求体，nil 字段保持不变。
// 规格不在此处更新（规格的价格与库存由独立的补货流程维护）。
type ProductUpdateRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Status      *string   `json:"status"`
}

// VariantView 是规格的对外快照。
type VariantView struct {
	ID       string            `json:"id"`
	SKU      string            `json:"sku"`
	Options  map[string]string `json:"options"`
	Price    int64             `json:"price"`
	Currency string            `json:"currency"`
	Stock    int               `json:"stock"`
}

// ProductView 是商品的对外快照。
type ProductView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Images      []string      `json:"images"`
	Status      string        `json:"status"`
	Variants    []VariantView `json:"variants"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProductListView 是分页列表的响应体。
type ProductListView struct {
	Products   []*ProductView        `json:"products"`
	Pagination pagination.Pagination `json:"pagination"`
}

func toView(p *domain.Product) *ProductView {
	variants := make([]VariantView, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = VariantView{
			ID:       v.ID,
			SKU:      v.SKU,
			Options:  v.Options,
			Price:    v.Price,
			Currency: v.Currency,
			Stock:    v.Stock,
		}
	}
	return &ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Images:      p.Images,
		Status:      p.Status,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
