package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func percent(v string) *Discount {
	return &Discount{Kind: KindPercent, Value: decimal.RequireFromString(v)}
}

func fixed(v int64) *Discount {
	return &Discount{Kind: KindFixed, Value: decimal.NewFromInt(v)}
}

func TestPrice_NoPromo(t *testing.T) {
	// 2 × 5000 = 10000，无促销
	totals := Price([]Line{{UnitPrice: 5000, Qty: 2}}, nil)

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Discount)
	assert.Equal(t, int64(10000), totals.GrandTotal)
}

func TestPrice_EmptyLines(t *testing.T) {
	totals := Price(nil, percent("10"))

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Discount)
	assert.Equal(t, int64(0), totals.GrandTotal)
}

func TestPrice_PercentPromo(t *testing.T) {
	totals := Price([]Line{{UnitPrice: 10000, Qty: 1}}, percent("10"))

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(1000), totals.Discount)
	assert.Equal(t, int64(9000), totals.GrandTotal)
}

func TestPrice_FractionalPercentRounding(t *testing.T) {
	// 30000 × 33.33% = 9999.0 → 9999（half away from zero）
	totals := Price([]Line{{UnitPrice: 30000, Qty: 1}}, percent("33.33"))

	assert.Equal(t, int64(30000), totals.Subtotal)
	assert.Equal(t, int64(9999), totals.Discount)
	assert.Equal(t, int64(20001), totals.GrandTotal)
}

func TestPrice_PercentRoundsHalfUp(t *testing.T) {
	// 50 × 1% = 0.5 → 1，验证不是银行家舍入
	totals := Price([]Line{{UnitPrice: 50, Qty: 1}}, percent("1"))
	assert.Equal(t, int64(1), totals.Discount)

	// 150 × 1% = 1.5 → 2
	totals = Price([]Line{{UnitPrice: 150, Qty: 1}}, percent("1"))
	assert.Equal(t, int64(2), totals.Discount)
}

func TestPrice_FixedPromoCappedAtSubtotal(t *testing.T) {
	totals := Price([]Line{{UnitPrice: 10000, Qty: 1}}, fixed(15000))

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(10000), totals.Discount)
	assert.Equal(t, int64(0), totals.GrandTotal)
}

func TestPrice_FixedPromoBelowSubtotal(t *testing.T) {
	totals := Price([]Line{{UnitPrice: 10000, Qty: 2}}, fixed(500))

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(500), totals.Discount)
	assert.Equal(t, int64(19500), totals.GrandTotal)
}

func TestPrice_MultiLineSubtotal(t *testing.T) {
	totals := Price([]Line{
		{UnitPrice: 29900, Qty: 2},
		{UnitPrice: 19900, Qty: 1},
		{UnitPrice: 4999, Qty: 3},
	}, nil)

	assert.Equal(t, int64(29900*2+19900+4999*3), totals.Subtotal)
	assert.Equal(t, totals.Subtotal, totals.GrandTotal)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, int64(15000), Line{UnitPrice: 5000, Qty: 3}.LineTotal())
}
