package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/shopspring/decimal"
)

type paymentIntentRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentIntentGateway implements checkout.PaymentIntentService by asking
// the upstream backend to create the intent. The server holds the provider
// secret key; this service only ever sees the client secret.
type PaymentIntentGateway struct {
	client *Client
}

// NewPaymentIntentGateway creates an intent gateway on the shared client.
func NewPaymentIntentGateway(client *Client) *PaymentIntentGateway {
	return &PaymentIntentGateway{client: client}
}

// CreateIntent creates a payment intent for the given amount and returns its
// client secret for the hosted payment element.
func (g *PaymentIntentGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, description string) (string, error) {
	req := paymentIntentRequest{
		Amount:      amount.InexactFloat64(),
		Description: description,
	}

	var resp paymentIntentResponse
	if err := g.client.doJSON(ctx, http.MethodPost, "/pagos/crear-intent", req, &resp); err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	if resp.ClientSecret == "" {
		return "", fmt.Errorf("upstream returned an empty client secret")
	}
	return resp.ClientSecret, nil
}

var _ checkout.PaymentIntentService = (*PaymentIntentGateway)(nil)
