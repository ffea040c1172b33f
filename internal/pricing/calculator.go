package pricing

import (
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrInvalidInput is returned for a negative base price
	ErrInvalidInput = errors.New("base price must be non-negative")
	// ErrMissingReference is returned when the vehicle or its category cannot
	// be resolved. An absent category is an error; only an unrecognized but
	// present one falls through to the zero multiplier.
	ErrMissingReference = errors.New("vehicle or vehicle category missing")
)

// WarnUnknownCategory is the soft warning attached to a zero-multiplier quote
const WarnUnknownCategory = "unrecognized vehicle category, priced at zero - check the vehicle-type catalog"

// categoryMultipliers is the fixed pricing coefficient table, keyed by
// lowercase category label.
var categoryMultipliers = map[string]float64{
	"city_car":   1.0,
	"electric":   1.2,
	"suv":        1.3,
	"4x4":        1.5,
	"sports_car": 2.0,
}

// Quote is the result of a price calculation
type Quote struct {
	BasePrice  float64 `json:"base_price"`
	Category   string  `json:"category"`
	Multiplier float64 `json:"multiplier"`
	FinalPrice float64 `json:"final_price"`
	Warning    string  `json:"warning,omitempty"`
}

// Calculator computes the final invoice price of an intervention from a base
// price and the vehicle's category. Pure; the optional logger only emits
// diagnostics for operator visibility.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new price calculator
func NewCalculator(logger *zap.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// FinalPrice applies the category multiplier to the base price.
// Category lookup is case-insensitive. An unrecognized category resolves to a
// zero multiplier with a warning rather than an error, so the operator can
// correct the catalog without losing the intervention entry.
func (c *Calculator) FinalPrice(basePrice float64, category string) (*Quote, error) {
	if basePrice < 0 {
		return nil, ErrInvalidInput
	}

	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return nil, ErrMissingReference
	}

	quote := &Quote{
		BasePrice: basePrice,
		Category:  normalized,
	}

	multiplier, ok := categoryMultipliers[normalized]
	if !ok {
		quote.Multiplier = 0
		quote.FinalPrice = 0
		quote.Warning = WarnUnknownCategory
		if c.logger != nil {
			c.logger.Warn("Unrecognized vehicle category, pricing at zero",
				zap.String("category", category),
				zap.Float64("base_price", basePrice),
			)
		}
		return quote, nil
	}

	quote.Multiplier = multiplier
	quote.FinalPrice = math.Round(basePrice*multiplier*100) / 100

	if c.logger != nil {
		c.logger.Debug("Computed final price",
			zap.String("category", normalized),
			zap.Float64("base_price", basePrice),
			zap.Float64("multiplier", multiplier),
			zap.Float64("final_price", quote.FinalPrice),
		)
	}

	return quote, nil
}

// KnownCategories returns the recognized category labels
func KnownCategories() []string {
	labels := make([]string, 0, len(categoryMultipliers))
	for label := range categoryMultipliers {
		labels = append(labels, label)
	}
	return labels
}
