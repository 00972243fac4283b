package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/shopspring/decimal"
)

// Wire payment method tags used by the upstream sale API.
const (
	wireMethodHosted   = "tarjeta"
	wireMethodTerminal = "tarjeta física"
	wireMethodCash     = "efectivo"
)

func wirePaymentMethod(m checkout.PaymentMethod) string {
	switch m {
	case checkout.PaymentMethodCardHosted:
		return wireMethodHosted
	case checkout.PaymentMethodCardTerminal:
		return wireMethodTerminal
	case checkout.PaymentMethodCash:
		return wireMethodCash
	default:
		return string(m)
	}
}

func domainPaymentMethod(wire string) checkout.PaymentMethod {
	switch wire {
	case wireMethodHosted:
		return checkout.PaymentMethodCardHosted
	case wireMethodTerminal:
		return checkout.PaymentMethodCardTerminal
	case wireMethodCash:
		return checkout.PaymentMethodCash
	default:
		return checkout.PaymentMethod(wire)
	}
}

func wireSaleStatus(s checkout.SaleStatus) string {
	if s == checkout.SaleStatusPaid {
		return "pagada"
	}
	return "pendiente"
}

func domainSaleStatus(wire string) checkout.SaleStatus {
	if wire == "pagada" {
		return checkout.SaleStatusPaid
	}
	return checkout.SaleStatusPending
}

type saleLineDocument struct {
	Product   string  `json:"producto"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precioUnitario"`
	Subtotal  float64 `json:"subtotal"`
}

type saleRequest struct {
	Lines          []saleLineDocument `json:"productos"`
	Total          float64            `json:"total"`
	Customer       string             `json:"cliente"`
	Employee       string             `json:"empleado"`
	PaymentMethod  string             `json:"metodoPago"`
	Status         string             `json:"estado"`
	AmountTendered *float64           `json:"pagoCliente,omitempty"`
	Change         *float64           `json:"cambio,omitempty"`
}

type saleDocument struct {
	ID            string             `json:"_id"`
	Lines         []saleLineDocument `json:"productos"`
	Total         float64            `json:"total"`
	Customer      string             `json:"cliente"`
	Employee      string             `json:"empleado"`
	PaymentMethod string             `json:"metodoPago"`
	Status        string             `json:"estado"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func (d saleDocument) toDomain() checkout.PersistedSale {
	lines := make([]checkout.SaleLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = checkout.SaleLine{
			ProductID: l.Product,
			Quantity:  l.Quantity,
			UnitPrice: decimal.NewFromFloat(l.UnitPrice),
			Subtotal:  decimal.NewFromFloat(l.Subtotal),
		}
	}
	return checkout.PersistedSale{
		ID: d.ID,
		SaleDraft: checkout.SaleDraft{
			Lines:         lines,
			Total:         decimal.NewFromFloat(d.Total),
			CustomerID:    d.Customer,
			OperatorID:    d.Employee,
			PaymentMethod: domainPaymentMethod(d.PaymentMethod),
			Status:        domainSaleStatus(d.Status),
		},
		CreatedAt: d.CreatedAt,
	}
}

// SaleGateway implements checkout.SaleGateway against the upstream sale API.
type SaleGateway struct {
	client *Client
}

// NewSaleGateway creates a sale gateway on the shared upstream client.
func NewSaleGateway(client *Client) *SaleGateway {
	return &SaleGateway{client: client}
}

// SubmitSale posts a draft as a new sale. Any non-2xx response surfaces as a
// submission error carrying the upstream message.
func (g *SaleGateway) SubmitSale(ctx context.Context, draft *checkout.SaleDraft) (*checkout.PersistedSale, error) {
	req := saleRequest{
		Lines:         make([]saleLineDocument, len(draft.Lines)),
		Total:         draft.Total.InexactFloat64(),
		Customer:      draft.CustomerID,
		Employee:      draft.OperatorID,
		PaymentMethod: wirePaymentMethod(draft.PaymentMethod),
		Status:        wireSaleStatus(draft.Status),
	}
	for i, l := range draft.Lines {
		req.Lines[i] = saleLineDocument{
			Product:   l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.InexactFloat64(),
			Subtotal:  l.Subtotal.InexactFloat64(),
		}
	}
	if draft.Cash != nil {
		tendered := draft.Cash.AmountTendered.InexactFloat64()
		change := draft.Cash.Change.InexactFloat64()
		req.AmountTendered = &tendered
		req.Change = &change
	}

	var doc saleDocument
	if err := g.client.doJSON(ctx, http.MethodPost, "/ventas/", req, &doc); err != nil {
		return nil, checkout.NewSubmissionError(err.Error())
	}

	sale := doc.toDomain()
	return &sale, nil
}

// SalesByCustomer fetches the purchase history for one customer. An upstream
// 404 means no history endpoint or no records; both yield an empty list.
func (g *SaleGateway) SalesByCustomer(ctx context.Context, customerID string) ([]checkout.PersistedSale, error) {
	var docs []saleDocument
	if err := g.client.doJSON(ctx, http.MethodGet, "/ventas/cliente/"+customerID, nil, &docs); err != nil {
		if IsNotFound(err) {
			return []checkout.PersistedSale{}, nil
		}
		return nil, fmt.Errorf("failed to list sales for customer %s: %w", customerID, err)
	}

	sales := make([]checkout.PersistedSale, len(docs))
	for i, d := range docs {
		sales[i] = d.toDomain()
	}
	return sales, nil
}

var _ checkout.SaleGateway = (*SaleGateway)(nil)
