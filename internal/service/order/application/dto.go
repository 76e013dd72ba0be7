// internal/service/order/application/dto.go
package application

import (
	"time"

	"storefront/internal/pkg/pagination"
	"storefront/internal/service/order/domain"
)

// CreateOrderRequest 是结账请求体。
type CreateOrderRequest struct {
	CartID string `json:"cartId"`
}

// UpdateStatusRequest 是订单状态变更的请求体。
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemView 是订单行的对外快照。
type OrderItemView struct {
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"`
	Currency  string `json:"currency"`
	Qty       int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
}

// OrderView 是订单的对外快照。
type OrderView struct {
	ID         string          `json:"id"`
	CartID     string          `json:"cartId"`
	PromoCode  *string         `json:"promoCode"`
	Subtotal   int64           `json:"subtotal"`
	Discount   int64           `json:"discount"`
	GrandTotal int64           `json:"grandTotal"`
	Status     string          `json:"status"`
	Items      []OrderItemView `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// OrderListView 是分页列表的响应体。
type OrderListView struct {
	Orders     []*OrderView          `json:"orders"`
	Pagination pagination.Pagination `json:"pagination"`
}

func toView(o *domain.Order) *OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			SKU:       item.SKU,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
			Qty:       item.Qty,
			LineTotal: item.LineTotal,
		}
	}

	var promoCode *string
	if o.PromoCode != "" {
		code := o.PromoCode
		promoCode = &code
	}

	return &OrderView{
		ID:         o.ID,
		CartID:     o.CartID,
		PromoCode:  promoCode,
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		GrandTotal: o.GrandTotal,
		Status:     string(o.Status),
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
