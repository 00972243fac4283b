package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod tags the payment path a sale was taken through.
type PaymentMethod string

const (
	PaymentMethodCardHosted   PaymentMethod = "card-hosted"
	PaymentMethodCardTerminal PaymentMethod = "card-terminal"
	PaymentMethodCash         PaymentMethod = "cash"
)

// SaleStatus represents the lifecycle of a sale record.
type SaleStatus string

const (
	SaleStatusPending SaleStatus = "pending"
	SaleStatusPaid    SaleStatus = "paid"
)

// SaleLine is one priced line of a sale draft.
type SaleLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CashPayment carries the tendered amount and change for cash sales,
// passed through to the gateway for receipt purposes.
type CashPayment struct {
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	Change         decimal.Decimal `json:"change"`
}

// SaleDraft is the fully-priced, payment-method-tagged representation of a
// cart at the moment a payment path commits. Repeated checkouts each spawn
// independent drafts; no cart identity is carried into the sale.
type SaleDraft struct {
	Lines         []SaleLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	CustomerID    string          `json:"customer_id"`
	OperatorID    string          `json:"operator_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        SaleStatus      `json:"status"`
	Cash          *CashPayment    `json:"cash,omitempty"`
}

// NewSaleDraft builds a draft from the cart, the computed totals, the
// current user and a payment method tag. Drafts start pending; a confirmer
// marks them paid.
func NewSaleDraft(cart *Cart, totals PricingBreakdown, user User, method PaymentMethod) *SaleDraft {
	lines := make([]SaleLine, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = SaleLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		}
	}
	return &SaleDraft{
		Lines:         lines,
		Total:         totals.Total,
		CustomerID:    user.ID,
		OperatorID:    user.ID,
		PaymentMethod: method,
		Status:        SaleStatusPending,
	}
}

// MarkPaid transitions the draft to paid.
func (d *SaleDraft) MarkPaid() {
	d.Status = SaleStatusPaid
}

// PersistedSale is the server's durable record of a completed transaction.
// It is immutable once created; there is no update path in this core.
type PersistedSale struct {
	ID        string    `json:"id"`
	SaleDraft
	CreatedAt time.Time `json:"created_at"`
}

// User is the resolved operator/customer for the session.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
