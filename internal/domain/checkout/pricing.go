package checkout

import "github.com/shopspring/decimal"

// DeliveryMode selects how the customer receives the order.
type DeliveryMode string

const (
	DeliveryModeStore DeliveryMode = "store"
	DeliveryModeHome  DeliveryMode = "home"
)

// Valid reports whether the mode is one of the known delivery modes.
func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeStore || m == DeliveryModeHome
}

// HomeDeliveryFee is the fixed surcharge applied to home deliveries.
var HomeDeliveryFee = decimal.NewFromFloat(5.00)

// PricingBreakdown is derived from a cart and a delivery mode; it is never
// stored.
type PricingBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, delivery fee and total from the cart.
// It is pure: the same cart and mode always produce the same breakdown.
func ComputeTotals(cart *Cart, mode DeliveryMode) PricingBreakdown {
	subtotal := decimal.Zero
	for _, line := range cart.Lines {
		subtotal = subtotal.Add(line.Subtotal())
	}

	fee := decimal.Zero
	if mode == DeliveryModeHome {
		fee = HomeDeliveryFee
	}

	return PricingBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}
