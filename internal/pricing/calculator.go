package pricing

import (
	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/enums"
)

// Line is the minimal slice of a cart line the calculator needs.
type Line struct {
	Quantity  int
	UnitPrice int
}

// Input captures everything a checkout quote depends on. PromotionEligible
// must already reflect the promotion's active flag and validity window; the
// calculator does not look at promotions itself.
type Input struct {
	Lines             []Line
	PromotionEligible bool
	Delivery          enums.DeliveryOption
}

// Quote is the priced breakdown of a checkout. All amounts are VND.
// FinalTotal = Subtotal - Discount + DeliveryFee, clamped at zero.
type Quote struct {
	Subtotal    int `json:"subtotal"`
	Discount    int `json:"discount"`
	DeliveryFee int `json:"delivery_fee"`
	FinalTotal  int `json:"final_total"`
}

// Calculator prices carts using the configured fee tiers and discount rate.
type Calculator struct {
	cfg config.PricingConfig
}

// NewCalculator builds a calculator from the pricing configuration.
func NewCalculator(cfg config.PricingConfig) Calculator {
	return Calculator{cfg: cfg}
}

// Subtotal sums quantity times unit price over the lines.
func Subtotal(lines []Line) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity * line.UnitPrice
	}
	return total
}

// Quote prices the input. The discount is a flat percentage of the whole
// subtotal whenever an eligible promotion is selected; the promotion's
// applicable-product list is not prorated.
func (c Calculator) Quote(in Input) Quote {
	subtotal := Subtotal(in.Lines)

	discount := 0
	if in.PromotionEligible {
		discount = subtotal * c.cfg.PromotionPercent / 100
	}

	deliveryFee := c.deliveryFee(in.Delivery, subtotal)

	final := subtotal - discount + deliveryFee
	if final < 0 {
		final = 0
	}

	return Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		FinalTotal:  final,
	}
}

// deliveryFee applies the shipping tiers: express is a flat fee regardless of
// subtotal; standard is free at or above the threshold.
func (c Calculator) deliveryFee(option enums.DeliveryOption, subtotal int) int {
	if option == enums.DeliveryOptionExpress {
		return c.cfg.ExpressDeliveryFee
	}
	if subtotal >= c.cfg.FreeDeliveryThreshold {
		return 0
	}
	return c.cfg.StandardDeliveryFee
}
