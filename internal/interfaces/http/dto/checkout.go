package dto

import (
	"time"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/shopspring/decimal"
)

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	ImageRef  string          `json:"image_ref,omitempty"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p checkout.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.UnitPrice,
		Stock:     p.Stock,
		ImageRef:  p.ImageRef,
	}
}

// CartLineResponse represents one cart line
type CartLineResponse struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	AvailableStock int             `json:"available_stock"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the session's cart
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	// Clamped is set when a quantity request was reduced to the stock cap.
	Clamped bool `json:"clamped,omitempty"`
}

// ToCartResponse converts a domain cart
func ToCartResponse(cart *checkout.Cart, clamped bool) CartResponse {
	lines := make([]CartLineResponse, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = CartLineResponse{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPrice:      l.UnitPrice,
			Quantity:       l.Quantity,
			AvailableStock: l.AvailableStock,
			Subtotal:       l.Subtotal(),
		}
	}
	return CartResponse{Lines: lines, Clamped: clamped}
}

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest sets the quantity of an existing line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// TotalsResponse represents the priced cart
type TotalsResponse struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// ToTotalsResponse converts a pricing breakdown
func ToTotalsResponse(t checkout.PricingBreakdown) TotalsResponse {
	return TotalsResponse{
		Subtotal:    t.Subtotal,
		DeliveryFee: t.DeliveryFee,
		Total:       t.Total,
	}
}

// StageHostedCheckoutRequest starts the hosted payment element flow
type StageHostedCheckoutRequest struct {
	DeliveryMode string `json:"delivery_mode" binding:"required,oneof=store home"`
}

// StagedCheckoutResponse is the handle for completing a hosted flow
type StagedCheckoutResponse struct {
	CorrelationID string `json:"correlation_id"`
	ClientSecret  string `json:"client_secret"`
}

// TerminalCheckoutRequest completes a physical terminal sale
type TerminalCheckoutRequest struct {
	DeliveryMode string `json:"delivery_mode" binding:"required,oneof=store home"`
	Attested     bool   `json:"attested"`
}

// CashCheckoutRequest completes a cash sale
type CashCheckoutRequest struct {
	DeliveryMode   string          `json:"delivery_mode" binding:"required,oneof=store home"`
	AmountTendered decimal.Decimal `json:"amount_tendered" binding:"required"`
}

// SaleLineResponse represents one line of a persisted sale
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a persisted sale
type SaleResponse struct {
	ID            string             `json:"id"`
	Lines         []SaleLineResponse `json:"lines"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ToSaleResponse converts a persisted sale
func ToSaleResponse(s checkout.PersistedSale) SaleResponse {
	lines := make([]SaleLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = SaleLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
	}
	return SaleResponse{
		ID:            s.ID,
		Lines:         lines,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
	}
}

// CheckoutResponse is the outcome of a completed checkout
type CheckoutResponse struct {
	Sale SaleResponse `json:"sale"`
	// AttestedOnly marks sales whose payment evidence is an operator
	// assertion rather than a provider confirmation.
	AttestedOnly   bool             `json:"attested_only,omitempty"`
	AmountTendered *decimal.Decimal `json:"amount_tendered,omitempty"`
	Change         *decimal.Decimal `json:"change,omitempty"`
}
