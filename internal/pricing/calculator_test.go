package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFinalPrice_KnownCategories(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	tests := []struct {
		category string
		base     float64
		want     float64
	}{
		{"city_car", 100, 100},
		{"electric", 100, 120},
		{"suv", 100, 130},
		{"4x4", 100, 150},
		{"sports_car", 100, 200},
		{"suv", 99.99, 129.99},
	}

	for _, tt := range tests {
		quote, err := calc.FinalPrice(tt.base, tt.category)
		require.NoError(t, err, tt.category)
		assert.Equal(t, tt.want, quote.FinalPrice, tt.category)
		assert.Empty(t, quote.Warning, tt.category)
	}
}

func TestFinalPrice_CaseInsensitive(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	quote, err := calc.FinalPrice(100, "SUV")
	require.NoError(t, err)
	assert.Equal(t, 130.0, quote.FinalPrice)
	assert.Equal(t, "suv", quote.Category)

	quote, err = calc.FinalPrice(100, "  Sports_Car  ")
	require.NoError(t, err)
	assert.Equal(t, 200.0, quote.FinalPrice)
}

func TestFinalPrice_UnknownCategoryPricesAtZero(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	quote, err := calc.FinalPrice(100, "hovercraft")
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.Multiplier)
	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.Equal(t, WarnUnknownCategory, quote.Warning)
}

func TestFinalPrice_MissingCategory(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	_, err := calc.FinalPrice(100, "")
	assert.ErrorIs(t, err, ErrMissingReference)

	_, err = calc.FinalPrice(100, "   ")
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestFinalPrice_NegativeBasePrice(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	_, err := calc.FinalPrice(-0.01, "suv")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinalPrice_ZeroBasePrice(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	quote, err := calc.FinalPrice(0, "4x4")
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.Equal(t, 1.5, quote.Multiplier)
}

func TestKnownCategories(t *testing.T) {
	labels := KnownCategories()
	assert.Len(t, labels, 5)
	assert.Contains(t, labels, "city_car")
	assert.Contains(t, labels, "4x4")
}
