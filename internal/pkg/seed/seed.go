// internal/pkg/seed/seed.go
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/pkg/logger"
	"storefront/internal/pricing"
	catalogdomain "storefront/internal/service/catalog/domain"
	promodomain "storefront/internal/service/promotion/domain"
)

// Run 写入一批演示数据：几款商品和两个促销码。
// 只在空库上执行，已有商品时直接跳过，重复运行是安全的。
func Run(ctx context.Context, products catalogdomain.ProductRepository, promos promodomain.PromoRepository) error {
	existing, total, err := products.List(ctx, catalogdomain.ListFilter{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 || len(existing) > 0 {
		logger.Ctx(ctx).Info().Msg("seed skipped: catalog is not empty")
		return nil
	}

	now := time.Now()
	for _, p := range demoProducts(now) {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
	}
	for _, p := range demoPromos(now) {
		if err := promos.Create(ctx, p); err != nil {
			return err
		}
	}

	logger.Ctx(ctx).Info().Msg("seed data loaded")
	return nil
}

func demoProducts(now time.Time) []*catalogdomain.Product {
	product := func(title, slug, desc string, variants ...catalogdomain.Variant) *catalogdomain.Product {
		id := uuid.NewString()
		for i := range variants {
			variants[i].ID = uuid.NewString()
			variants[i].ProductID = id
			variants[i].ProductTitle = title
			variants[i].Currency = "USD"
		}
		return &catalogdomain.Product{
			ID:          id,
			Title:       title,
			Slug:        slug,
			Description: desc,
			Images:      []string{"/images/" + slug + ".jpg"},
			Status:      "active",
			Variants:    variants,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []*catalogdomain.Product{
		product("Wireless Headphones", "wireless-headphones",
			"Over-ear wireless headphones with active noise cancellation.",
			catalogdomain.Variant{SKU: "WH-BLK", Options: map[string]string{"color": "black"}, Price: 29900, Stock: 50},
			catalogdomain.Variant{SKU: "WH-WHT", Options: map[string]string{"color": "white"}, Price: 29900, Stock: 35},
		),
		product("Fitness Watch", "fitness-watch",
			"Water-resistant fitness tracker with heart-rate monitoring.",
			catalogdomain.Variant{SKU: "FW-40", Options: map[string]string{"size": "40mm"}, Price: 19900, Stock: 80},
			catalogdomain.Variant{SKU: "FW-44", Options: map[string]string{"size": "44mm"}, Price: 22900, Stock: 60},
		),
		product("Portable Speaker", "portable-speaker",
			"Compact bluetooth speaker, 12 hours of battery life.",
			catalogdomain.Variant{SKU: "PS-STD", Options: map[string]string{}, Price: 8900, Stock: 120},
		),
		product("Laptop Stand", "laptop-stand",
			"Aluminium laptop stand with adjustable height.",
			catalogdomain.Variant{SKU: "LS-SLV", Options: map[string]string{"color": "silver"}, Price: 4900, Stock: 200},
			catalogdomain.Variant{SKU: "LS-GRY", Options: map[string]string{"color": "space gray"}, Price: 4900, Stock: 0},
		),
	}
}

func demoPromos(now time.Time) []*promodomain.Promo {
	mustPromo := func(code string, kind pricing.DiscountKind, value int64) *promodomain.Promo {
		p, err := promodomain.NewPromo(
			uuid.NewString(), code, kind, decimal.NewFromInt(value),
			now.AddDate(0, -1, 0), now.AddDate(1, 0, 0), true,
		)
		if err != nil {
			panic(err) // 种子数据写死在代码里，构造失败属于编程错误
		}
		return p
	}

	return []*promodomain.Promo{
		mustPromo("WELCOME10", pricing.KindPercent, 10),
		mustPromo("SAVE5", pricing.KindFixed, 500),
	}
}
