package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// StripeVerifier implements checkout.PaymentIntentVerifier by retrieving
// the payment intent from Stripe. The intent was created upstream; this
// service only holds the secret key to read its state back.
type StripeVerifier struct {
	logger *zap.Logger
}

// NewStripeVerifier initializes the Stripe client and returns a verifier.
func NewStripeVerifier(cfg config.StripeConfig, logger *zap.Logger) (*StripeVerifier, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	stripe.Key = cfg.SecretKey

	return &StripeVerifier{logger: logger}, nil
}

// IntentState fetches the intent named by the client secret and returns its
// provider status and intent id.
func (v *StripeVerifier) IntentState(ctx context.Context, clientSecret string) (string, string, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return "", "", err
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		v.logger.Warn("Failed to retrieve payment intent",
			zap.String("intent_id", intentID),
			zap.Error(err))
		return "", "", fmt.Errorf("stripe: failed to retrieve payment intent: %w", err)
	}

	return string(intent.Status), intent.ID, nil
}

// IntentIDFromClientSecret extracts the intent id from a client secret of
// the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret_")
	if idx <= 0 || !strings.HasPrefix(clientSecret, "pi_") {
		return "", fmt.Errorf("stripe: malformed client secret")
	}
	return clientSecret[:idx], nil
}

var _ checkout.PaymentIntentVerifier = (*StripeVerifier)(nil)
