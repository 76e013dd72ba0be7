// internal/service/catalog/infrastructure/mapper.go
package infrastructure

import (
	"encoding/json"

	"storefront/internal/service/catalog/domain"
)

// ToDomainProduct 将数据库模型转换为领域模型。
func ToDomainProduct(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	var images []string
	if model.Images != "" {
		_ = json.Unmarshal([]byte(model.Images), &images)
	}

	variants := make([]domain.Variant, len(model.Variants))
	for i := range model.Variants {
		v := toDomainVariant(&model.Variants[i])
		v.ProductTitle = model.Title
		variants[i] = *v
	}

	return &domain.Product{
		ID:          model.ID,
		Title:       model.Title,
		Slug:        model.Slug,
		Description: model.Description,
		Images:      images,
		Status:      model.Status,
		Variants:    variants,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toDomainVariant(model *VariantModel) *domain.Variant {
	var options map[string]string
	if model.Options != "" {
		_ = json.Unmarshal([]byte(model.Options), &options)
	}
	return &domain.Variant{
		ID:        model.ID,
		ProductID: model.ProductID,
		SKU:       model.SKU,
		Options:   options,
		Price:     model.Price,
		Currency:  model.Currency,
		Stock:     model.Stock,
	}
}

// FromDomainProduct 将领域模型转换为数据库模型（含规格）。
func FromDomainProduct(dmn *domain.Product) *ProductModel {
	if dmn == nil {
		return nil
	}

	images, _ := json.Marshal(dmn.Images)

	variants := make([]VariantModel, len(dmn.Variants))
	for i, v := range dmn.Variants {
		options, _ := json.Marshal(v.Options)
		variants[i] = VariantModel{
			ID:        v.ID,
			ProductID: dmn.ID,
			SKU:       v.SKU,
			Options:   string(options),
			Price:     v.Price,
			Currency:  v.Currency,
			Stock:     v.Stock,
		}
	}

	return &ProductModel{
		ID:          dmn.ID,
		Title:       dmn.Title,
		Slug:        dmn.Slug,
		Description: dmn.Description,
		Images:      string(images),
		Status:      dmn.Status,
		Variants:    variants,
	}
}
