// internal/service/cart/infrastructure/mapper.go
package infrastructure

import (
	"database/sql"

	"storefront/internal/service/cart/domain"
)

// ToDomainCart 将数据库模型转换为领域模型。
func ToDomainCart(model *CartModel) *domain.Cart {
	if model == nil {
		return nil
	}
	items := make([]domain.LineItem, len(model.Items))
	for i, m := range model.Items {
		items[i] = domain.LineItem{
			SKU:       m.SKU,
			Title:     m.Title,
			UnitPrice: m.UnitPrice,
			Currency:  m.Currency,
			Qty:       m.Qty,
		}
	}
	return &domain.Cart{
		ID:        model.ID,
		Token:     model.Token,
		Items:     items,
		PromoCode: model.PromoCode.String,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// FromDomainCart 将领域模型转换为数据库模型（不含行项目，
// 行项目由 UpsertItem/DeleteItem 单独维护）。
func FromDomainCart(dmn *domain.Cart) *CartModel {
	if dmn == nil {
		return nil
	}
	return &CartModel{
		ID:        dmn.ID,
		Token:     dmn.Token,
		PromoCode: sql.NullString{String: dmn.PromoCode, Valid: dmn.PromoCode != ""},
	}
}

func fromDomainItem(cartID string, item domain.LineItem) *CartItemModel {
	return &CartItemModel{
		CartID:    cartID,
		SKU:       item.SKU,
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Currency:  item.Currency,
		Qty:       item.Qty,
	}
}
