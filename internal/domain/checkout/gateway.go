package checkout

import (
	"context"

	"github.com/shopspring/decimal"
)

// SaleGateway converts a draft into a persisted sale at the upstream sale
// API. The call is not idempotent: no client-side idempotency key exists in
// this design, so a retry after a timeout may create a duplicate sale.
type SaleGateway interface {
	SubmitSale(ctx context.Context, draft *SaleDraft) (*PersistedSale, error)
	SalesByCustomer(ctx context.Context, customerID string) ([]PersistedSale, error)
}

// ProductCatalog exposes the upstream product API: listing feeds the cart
// with live stock, and UpdateStock is the per-product decrement used by
// reconciliation.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateStock(ctx context.Context, productID string, newStock int) error
}

// PaymentIntentService creates an externally held payment intent for the
// hosted payment element flow.
type PaymentIntentService interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, description string) (clientSecret string, err error)
}
