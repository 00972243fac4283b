package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Confirmation is the terminal result of a successful confirmation step.
type Confirmation struct {
	Method PaymentMethod
	// Reference is the provider-side identifier where one exists
	// (payment intent id for the hosted flow).
	Reference string
	// AttestedOnly marks confirmations backed by nothing but an operator
	// assertion. This is the weakest guarantee in the system.
	AttestedOnly bool
}

// PaymentConfirmer is the single point of variance between the three
// payment flows. The shared checkout path (validate, submit, reconcile,
// clear) is identical for every implementation.
type PaymentConfirmer interface {
	Method() PaymentMethod
	Confirm(ctx context.Context, draft *SaleDraft) (*Confirmation, error)
}

// PaymentIntentVerifier reports the provider-side state of a payment
// intent identified by its client secret.
type PaymentIntentVerifier interface {
	IntentState(ctx context.Context, clientSecret string) (state string, reference string, err error)
}

// IntentStateSucceeded is the only provider state that may trigger sale
// submission. Anything else, including a still-pending requires_action,
// aborts without submitting.
const IntentStateSucceeded = "succeeded"

// HostedElementConfirmer confirms the hosted payment element flow by
// checking the externally created payment intent against the provider.
type HostedElementConfirmer struct {
	verifier     PaymentIntentVerifier
	clientSecret string
}

// NewHostedElementConfirmer creates a confirmer for a staged intent.
func NewHostedElementConfirmer(verifier PaymentIntentVerifier, clientSecret string) *HostedElementConfirmer {
	return &HostedElementConfirmer{verifier: verifier, clientSecret: clientSecret}
}

// Method returns the payment method tag for this flow.
func (c *HostedElementConfirmer) Method() PaymentMethod {
	return PaymentMethodCardHosted
}

// Confirm checks the intent state with the provider. Only a terminal
// "succeeded" marks the draft paid; every other state declines.
func (c *HostedElementConfirmer) Confirm(ctx context.Context, draft *SaleDraft) (*Confirmation, error) {
	state, reference, err := c.verifier.IntentState(ctx, c.clientSecret)
	if err != nil {
		return nil, NewPaymentDeclinedError(err.Error())
	}
	if state != IntentStateSucceeded {
		return nil, NewPaymentDeclinedError(fmt.Sprintf("provider returned status %q", state))
	}

	draft.MarkPaid()
	return &Confirmation{
		Method:    PaymentMethodCardHosted,
		Reference: reference,
	}, nil
}

// TerminalAttestationConfirmer confirms the physical terminal flow on
// nothing but the operator's assertion that the terminal transaction
// succeeded. There is no machine verification.
type TerminalAttestationConfirmer struct {
	attested bool
}

// NewTerminalAttestationConfirmer creates a confirmer carrying the
// operator's attestation.
func NewTerminalAttestationConfirmer(attested bool) *TerminalAttestationConfirmer {
	return &TerminalAttestationConfirmer{attested: attested}
}

// Method returns the payment method tag for this flow.
func (c *TerminalAttestationConfirmer) Method() PaymentMethod {
	return PaymentMethodCardTerminal
}

// Confirm accepts only an explicit attestation and flags the result as
// attested-only so callers can surface the weaker guarantee.
func (c *TerminalAttestationConfirmer) Confirm(ctx context.Context, draft *SaleDraft) (*Confirmation, error) {
	if !c.attested {
		return nil, NewPaymentDeclinedError("operator did not attest the terminal transaction")
	}

	draft.MarkPaid()
	return &Confirmation{
		Method:       PaymentMethodCardTerminal,
		AttestedOnly: true,
	}, nil
}

// CashTenderConfirmer confirms the cash flow. Confirmation is blocked while
// the tendered amount is below the total; on success the tendered amount
// and change ride on the draft for receipt purposes.
type CashTenderConfirmer struct {
	tendered decimal.Decimal
}

// NewCashTenderConfirmer creates a confirmer for a tendered amount.
func NewCashTenderConfirmer(tendered decimal.Decimal) *CashTenderConfirmer {
	return &CashTenderConfirmer{tendered: tendered}
}

// Method returns the payment method tag for this flow.
func (c *CashTenderConfirmer) Method() PaymentMethod {
	return PaymentMethodCash
}

// Confirm requires tendered >= total and computes change = tendered - total.
func (c *CashTenderConfirmer) Confirm(ctx context.Context, draft *SaleDraft) (*Confirmation, error) {
	if c.tendered.LessThan(draft.Total) {
		return nil, NewPaymentDeclinedError("insufficient payment")
	}

	draft.Cash = &CashPayment{
		AmountTendered: c.tendered,
		Change:         c.tendered.Sub(draft.Total),
	}
	draft.MarkPaid()
	return &Confirmation{Method: PaymentMethodCash}, nil
}
