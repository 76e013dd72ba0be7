// internal/service/promotion/domain/promo_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/pricing"
)

func TestNewPromo_Validation(t *testing.T) {
	start := time.Now()
	end := start.Add(24 * time.Hour)

	promo, err := NewPromo("id-1", "  welcome10 ", pricing.KindPercent, decimal.NewFromInt(10), start, end, true)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", promo.Code)

	_, err = NewPromo("id-2", "X", pricing.KindPercent, decimal.NewFromInt(101), start, end, true)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewPromo("id-3", "X", pricing.KindPercent, decimal.NewFromInt(-1), start, end, true)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewPromo("id-4", "X", pricing.KindFixed, decimal.NewFromInt(-500), start, end, true)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewPromo("id-5", "X", "bogo", decimal.NewFromInt(1), start, end, true)
	assert.ErrorIs(t, err, ErrInvalidKind)

	// 边界值合法
	_, err = NewPromo("id-6", "X", pricing.KindPercent, decimal.NewFromInt(100), start, end, true)
	assert.NoError(t, err)
	_, err = NewPromo("id-7", "X", pricing.KindPercent, decimal.Zero, start, end, true)
	assert.NoError(t, err)
}

func TestPromo_ActiveAt_HalfOpenWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	promo, err := NewPromo("id-1", "SUMMER", pricing.KindPercent, decimal.NewFromInt(15), start, end, true)
	require.NoError(t, err)

	assert.False(t, promo.ActiveAt(start.Add(-time.Nanosecond)))
	assert.True(t, promo.ActiveAt(start)) // 起点包含
	assert.True(t, promo.ActiveAt(start.Add(12*time.Hour)))
	assert.True(t, promo.ActiveAt(end.Add(-time.Nanosecond)))
	assert.False(t, promo.ActiveAt(end)) // 终点不包含
	assert.False(t, promo.ActiveAt(end.Add(time.Hour)))
}

func TestPromo_ActiveAt_DisabledOverridesWindow(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	promo, err := NewPromo("id-1", "OFF", pricing.KindFixed, decimal.NewFromInt(500), start, end, false)
	require.NoError(t, err)

	assert.False(t, promo.ActiveAt(time.Now()))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCode("welcome10"))
	assert.Equal(t, "WELCOME10", NormalizeCode("  Welcome10\n"))
	assert.Equal(t, "", NormalizeCode("   "))
}
