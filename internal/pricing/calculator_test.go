package pricing

import (
	"testing"

	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.PricingConfig {
	return config.PricingConfig{
		StandardDeliveryFee:   30000,
		ExpressDeliveryFee:    50000,
		FreeDeliveryThreshold: 500000,
		PromotionPercent:      10,
	}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Quantity: 10, UnitPrice: 15000},
		{Quantity: 2, UnitPrice: 25000},
	}
	assert.Equal(t, 200000, Subtotal(lines))
	assert.Equal(t, 0, Subtotal(nil))
}

func TestQuoteDeliveryFeeTiers(t *testing.T) {
	calc := NewCalculator(testConfig())

	tests := []struct {
		name     string
		subtotal int
		delivery enums.DeliveryOption
		wantFee  int
	}{
		{"standard below threshold", 450000, enums.DeliveryOptionStandard, 30000},
		{"standard at threshold", 500000, enums.DeliveryOptionStandard, 0},
		{"standard above threshold", 750000, enums.DeliveryOptionStandard, 0},
		{"express below threshold", 450000, enums.DeliveryOptionExpress, 50000},
		{"express above threshold", 750000, enums.DeliveryOptionExpress, 50000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quote := calc.Quote(Input{
				Lines:    []Line{{Quantity: 1, UnitPrice: tc.subtotal}},
				Delivery: tc.delivery,
			})
			assert.Equal(t, tc.wantFee, quote.DeliveryFee)
			assert.Equal(t, tc.subtotal+tc.wantFee, quote.FinalTotal)
		})
	}
}

func TestQuotePromotionDiscount(t *testing.T) {
	calc := NewCalculator(testConfig())
	lines := []Line{{Quantity: 8, UnitPrice: 25000}}

	eligible := calc.Quote(Input{Lines: lines, PromotionEligible: true, Delivery: enums.DeliveryOptionStandard})
	assert.Equal(t, 200000, eligible.Subtotal)
	assert.Equal(t, 20000, eligible.Discount)
	assert.Equal(t, 200000-20000+30000, eligible.FinalTotal)

	none := calc.Quote(Input{Lines: lines, Delivery: enums.DeliveryOptionStandard})
	assert.Equal(t, 0, none.Discount)
}

func TestQuoteDiscountFloors(t *testing.T) {
	calc := NewCalculator(testConfig())

	quote := calc.Quote(Input{
		Lines:             []Line{{Quantity: 1, UnitPrice: 15005}},
		PromotionEligible: true,
		Delivery:          enums.DeliveryOptionStandard,
	})
	// 10% of 15,005 floors to 1,500.
	assert.Equal(t, 1500, quote.Discount)
}

func TestQuoteFinalTotalNeverNegative(t *testing.T) {
	calc := NewCalculator(config.PricingConfig{
		StandardDeliveryFee:   0,
		ExpressDeliveryFee:    0,
		FreeDeliveryThreshold: 500000,
		PromotionPercent:      150,
	})

	quote := calc.Quote(Input{
		Lines:             []Line{{Quantity: 1, UnitPrice: 10000}},
		PromotionEligible: true,
		Delivery:          enums.DeliveryOptionStandard,
	})
	assert.Equal(t, 0, quote.FinalTotal)
}

func TestQuoteEndToEndScenario(t *testing.T) {
	calc := NewCalculator(testConfig())

	quote := calc.Quote(Input{
		Lines:    []Line{{Quantity: 10, UnitPrice: 15000}},
		Delivery: enums.DeliveryOptionStandard,
	})

	assert.Equal(t, 150000, quote.Subtotal)
	assert.Equal(t, 0, quote.Discount)
	assert.Equal(t, 30000, quote.DeliveryFee)
	assert.Equal(t, 180000, quote.FinalTotal)
}
