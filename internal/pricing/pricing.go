// internal/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"
)

// DiscountKind 定义了折扣的两种计算方式。
type DiscountKind string

const (
	KindPercent DiscountKind = "percent" // 按小计的百分比折扣
	KindFixed   DiscountKind = "fixed"   // 固定金额折扣（最小货币单位）
)

// Discount 是一个已解析的促销折扣规则。
// Value 对 percent 类型是百分比（允许小数，如 33.33），
// 对 fixed 类型是最小货币单位的整数金额。
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// Line 是定价引擎的输入行：单价 × 数量。
// 单价始终以最小货币单位（如"分"）表示，绝不使用浮点金额。
type Line struct {
	UnitPrice int64
	Qty       int
}

// Totals 是一次定价计算的结果，全部为整数最小货币单位。
type Totals struct {
	Subtotal   int64 `json:"subtotal"`
	Discount   int64 `json:"discount"`
	GrandTotal int64 `json:"grandTotal"`
}

// LineTotal 计算单行金额。
func (l Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Qty)
}

// Price 是定价引擎的唯一入口：给定行项目与可选的折扣规则，
// 计算小计、折扣与应付总额。discount 为 nil 表示无促销。
//
// 规则：
//   - subtotal = Σ(unitPrice × qty)，输入已是整数，无舍入。
//   - percent: discount = round(subtotal × value / 100)，四舍五入
//     （half away from zero，而非银行家舍入）。
//   - fixed:   discount = min(value, subtotal)，折扣不超过小计。
//   - grandTotal = max(subtotal − discount, 0)，永不为负。
func Price(lines []Line, discount *Discount) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.LineTotal()
	}

	var amount int64
	if discount != nil {
		amount = discount.amountFor(subtotal)
	}

	grand := subtotal - amount
	if grand < 0 {
		grand = 0
	}

	return Totals{
		Subtotal:   subtotal,
		Discount:   amount,
		GrandTotal: grand,
	}
}

// amountFor 计算该折扣作用于给定小计时的折扣金额。
func (d *Discount) amountFor(subtotal int64) int64 {
	switch d.Kind {
	case KindPercent:
		return percentOf(subtotal, d.Value)
	case KindFixed:
		fixed := d.Value.IntPart()
		if fixed > subtotal {
			return subtotal
		}
		if fixed < 0 {
			return 0
		}
		return fixed
	default:
		return 0
	}
}

// percentOf 以 decimal 计算 subtotal × percent / 100 并舍入到整数。
// decimal.Round 的语义正是 half away from zero，与历史测试夹具一致
// （30000 × 33.33% = 9999.0 → 9999）。
func percentOf(subtotal int64, percent decimal.Decimal) int64 {
	if percent.IsNegative() {
		return 0
	}
	return decimal.NewFromInt(subtotal).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
