// internal/service/order/infrastructure/mapper.go
package infrastructure

import (
	"database/sql"

	"storefront/internal/service/order/domain"
)

// ToDomainOrder 将数据库模型转换为领域模型。
func ToDomainOrder(model *OrderModel) *domain.Order {
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
			LineTotal: m.LineTotal,
		}
	}
	return &domain.Order{
		ID:         model.ID,
		CartID:     model.CartID,
		PromoCode:  model.PromoCode.String,
		Subtotal:   model.Subtotal,
		Discount:   model.Discount,
		GrandTotal: model.GrandTotal,
		Status:     domain.Status(model.Status),
		Items:      items,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// FromDomainOrder 将领域模型转换为数据库模型（含行快照）。
func FromDomainOrder(dmn *domain.Order) *OrderModel {
	if dmn == nil {
		return nil
	}
	items := make([]OrderItemModel, len(dmn.Items))
	for i, item := range dmn.Items {
		items[i] = OrderItemModel{
			OrderID:   dmn.ID,
			SKU:       item.SKU,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
			Qty:       item.Qty,
			LineTotal: item.LineTotal,
		}
	}
	return &OrderModel{
		ID:         dmn.ID,
		CartID:     dmn.CartID,
		PromoCode:  sql.NullString{String: dmn.PromoCode, Valid: dmn.PromoCode != ""},
		Subtotal:   dmn.Subtotal,
		Discount:   dmn.Discount,
		GrandTotal: dmn.GrandTotal,
		Status:     string(dmn.Status),
		Items:      items,
	}
}
