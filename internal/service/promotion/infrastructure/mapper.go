// internal/service/promotion/infrastructure/mapper.go
package infrastructure

import (
	"storefront/internal/pricing"
	"storefront/internal/service/promotion/domain"
)

// ToDomainPromo 将数据库模型转换为领域模型。
func ToDomainPromo(model *PromoModel) *domain.Promo {
	if model == nil {
		return nil
	}
	return &domain.Promo{
		ID:        model.ID,
		Code:      model.Code,
		Kind:      pricing.DiscountKind(model.Kind),
		Value:     model.Value,
		StartsAt:  model.StartsAt,
		EndsAt:    model.EndsAt,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// FromDomainPromo 将领域模型转换为数据库模型。
func FromDomainPromo(dmn *domain.Promo) *PromoModel {
	if dmn == nil {
		return nil
	}
	return &PromoModel{
		ID:       dmn.ID,
		Code:     dmn.Code,
		Kind:     string(dmn.Kind),
		Value:    dmn.Value,
		StartsAt: dmn.StartsAt,
		EndsAt:   dmn.EndsAt,
		Active:   dmn.Active,
	}
}
