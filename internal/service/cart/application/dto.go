// internal/service/cart/application/dto.go
package application

import (
	"time"

	"storefront/internal/pricing"
	"storefront/internal/service/cart/domain"
)

// LineItemView 是行项目的对外快照，lineTotal 为计算值。
type LineItemView struct {
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"`
	Currency  string `json:"currency"`
	Qty       int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
}

// CartSnapshot 是购物车的完整定价快照。
// 每个写操作都返回一份重新定价后的快照。
type CartSnapshot struct {
	ID         string         `json:"id"`
	Token      string         `json:"token"`
	Items      []LineItemView `json:"items"`
	PromoCode  *string        `json:"promoCode"`
	Subtotal   int64          `json:"subtotal"`
	Discount   int64          `json:"discount"`
	GrandTotal int64          `json:"grandTotal"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func toSnapshot(cart *domain.Cart, totals pricing.Totals) *CartSnapshot {
	items := make([]LineItemView, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = LineItemView{
			SKU:       item.SKU,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
			Qty:       item.Qty,
			LineTotal: item.UnitPrice * int64(item.Qty),
		}
	}

	var promoCode *string
	if cart.PromoCode != "" {
		code := cart.PromoCode
		promoCode = &code
	}

	return &CartSnapshot{
		ID:         cart.ID,
		Token:      cart.Token,
		Items:      items,
		PromoCode:  promoCode,
		Subtotal:   totals.Subtotal,
		Discount:   totals.Discount,
		GrandTotal: totals.GrandTotal,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
