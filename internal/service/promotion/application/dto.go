// internal/service/promotion/application/dto.go
package application

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/pkg/pagination"
	"storefront/internal/service/promotion/domain"
)

// PromoRequest 是创建促销的请求体。
type PromoRequest struct {
	Code     string          `json:"code"`
	Kind     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	StartsAt time.Time       `json:"startsAt"`
	EndsAt   time.Time       `json:"endsAt"`
	Active   bool            `json:"active"`
}

// PromoUpdateRequest 是更新促销的请求体，nil 字段表示保持不变。
type PromoUpdateRequest struct {
	Code     *string          `json:"code"`
	Kind     *string          `json:"type"`
	Value    *decimal.Decimal `json:"value"`
	StartsAt *time.Time       `json:"startsAt"`
	EndsAt   *time.Time       `json:"endsAt"`
	Active   *bool            `json:"active"`
}

// PromoView 是促销规则的对外快照。
type PromoView struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Kind      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	StartsAt  time.Time       `json:"startsAt"`
	EndsAt    time.Time       `json:"endsAt"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PromoListView 是分页列表的响应体。
type PromoListView struct {
	Promos     []*PromoView          `json:"promos"`
	Pagination pagination.Pagination `json:"pagination"`
}

func toView(p *domain.Promo) *PromoView {
	return &PromoView{
		ID:        p.ID,
		Code:      p.Code,
		Kind:      string(p.Kind),
		Value:     p.Value,
		StartsAt:  p.StartsAt,
		EndsAt:    p.EndsAt,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
