package checkout

import (
	"context"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// intentDescription is the line shown on the provider's payment record.
const intentDescription = "Pago de productos"

// CheckoutService drives the three payment flows through one shared path:
// validate the cart and session, price it, confirm payment, submit the sale,
// reconcile stock, clear the cart. Only the confirmation step varies.
type CheckoutService struct {
	carts    checkout.CartRepository
	pendings checkout.PendingCheckoutStore
	users    checkout.CurrentUserProvider
	sales    checkout.SaleGateway
	intents  checkout.PaymentIntentService
	verifier checkout.PaymentIntentVerifier
	stock    *StockReconciler
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts checkout.CartRepository,
	pendings checkout.PendingCheckoutStore,
	users checkout.CurrentUserProvider,
	sales checkout.SaleGateway,
	intents checkout.PaymentIntentService,
	verifier checkout.PaymentIntentVerifier,
	stock *StockReconciler,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		carts:    carts,
		pendings: pendings,
		users:    users,
		sales:    sales,
		intents:  intents,
		verifier: verifier,
		stock:    stock,
		logger:   logger,
	}
}

// CheckoutResult is the outcome of a completed checkout.
type CheckoutResult struct {
	Sale         *checkout.PersistedSale
	Confirmation *checkout.Confirmation
	Cash         *checkout.CashPayment
}

// StagedCheckout is the client's handle on a hosted flow awaiting provider
// confirmation.
type StagedCheckout struct {
	CorrelationID uuid.UUID
	ClientSecret  string
}

// prepare validates the session and cart and builds a priced draft. The
// checks are ordered: an empty cart fails before authentication is even
// consulted, and no gateway call happens on either failure.
func (s *CheckoutService) prepare(ctx context.Context, sessionID string, mode checkout.DeliveryMode, method checkout.PaymentMethod) (*checkout.Cart, *checkout.SaleDraft, error) {
	if !mode.Valid() {
		return nil, nil, checkout.ErrInvalidDeliveryMode
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if cart.IsEmpty() {
		return nil, nil, checkout.ErrCartEmpty
	}

	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, checkout.ErrUnauthenticated
	}

	totals := checkout.ComputeTotals(cart, mode)
	draft := checkout.NewSaleDraft(cart, totals, *user, method)
	return cart, draft, nil
}

// finalize submits a confirmed draft, reconciles stock, and clears the cart.
// A submission failure leaves both the cart and upstream stock untouched.
// Reconciliation failures are logged, never blocking: the sale stands.
func (s *CheckoutService) finalize(ctx context.Context, sessionID string, draft *checkout.SaleDraft, baseline map[string]int) (*checkout.PersistedSale, error) {
	sale, err := s.sales.SubmitSale(ctx, draft)
	if err != nil {
		return nil, err
	}

	// The sale exists upstream from here on. Reconciliation and the cart
	// clear run on a detached context so a client disconnect after
	// submission cannot cancel them mid-flight.
	ctx = context.WithoutCancel(ctx)

	s.stock.Reconcile(ctx, sale.ID, baseline, draft.Lines)

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The sale already exists upstream; a stale cart is recoverable.
		s.logger.Warn("Failed to clear cart after sale",
			zap.String("session_id", sessionID),
			zap.String("sale_id", sale.ID),
			zap.Error(err))
	}

	s.logger.Info("Sale completed",
		zap.String("sale_id", sale.ID),
		zap.String("payment_method", string(draft.PaymentMethod)))
	return sale, nil
}

// checkout runs the shared single-shot path with the given confirmer.
func (s *CheckoutService) checkout(ctx context.Context, sessionID string, mode checkout.DeliveryMode, confirmer checkout.PaymentConfirmer) (*CheckoutResult, error) {
	cart, draft, err := s.prepare(ctx, sessionID, mode, confirmer.Method())
	if err != nil {
		return nil, err
	}

	confirmation, err := confirmer.Confirm(ctx, draft)
	if err != nil {
		return nil, err
	}

	sale, err := s.finalize(ctx, sessionID, draft, cart.StockSnapshot())
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Sale:         sale,
		Confirmation: confirmation,
		Cash:         draft.Cash,
	}, nil
}

// CheckoutTerminal completes a sale paid on the physical card terminal. The
// only evidence of payment is the operator's attestation.
func (s *CheckoutService) CheckoutTerminal(ctx context.Context, sessionID string, mode checkout.DeliveryMode, attested bool) (*CheckoutResult, error) {
	return s.checkout(ctx, sessionID, mode, checkout.NewTerminalAttestationConfirmer(attested))
}

// CheckoutCash completes a cash sale. Confirmation requires the tendered
// amount to cover the total; the result carries the computed change.
func (s *CheckoutService) CheckoutCash(ctx context.Context, sessionID string, mode checkout.DeliveryMode, tendered decimal.Decimal) (*CheckoutResult, error) {
	return s.checkout(ctx, sessionID, mode, checkout.NewCashTenderConfirmer(tendered))
}

// StageHostedCheckout starts the hosted payment element flow: it prices the
// cart, creates a provider intent through the upstream backend, and stages
// the draft for recovery after the provider round trip. The cart is not
// touched; abandoning here leaves everything as it was.
func (s *CheckoutService) StageHostedCheckout(ctx context.Context, sessionID string, mode checkout.DeliveryMode) (*StagedCheckout, error) {
	cart, draft, err := s.prepare(ctx, sessionID, mode, checkout.PaymentMethodCardHosted)
	if err != nil {
		return nil, err
	}

	clientSecret, err := s.intents.CreateIntent(ctx, draft.Total, intentDescription)
	if err != nil {
		return nil, err
	}

	pending := checkout.NewPendingCheckout(sessionID, *draft, cart.StockSnapshot(), clientSecret)
	if err := s.pendings.Put(ctx, pending); err != nil {
		return nil, err
	}

	s.logger.Info("Staged hosted checkout",
		zap.String("session_id", sessionID),
		zap.String("correlation_id", pending.CorrelationID.String()))

	return &StagedCheckout{
		CorrelationID: pending.CorrelationID,
		ClientSecret:  clientSecret,
	}, nil
}

// CompleteHostedCheckout finishes a staged hosted flow. The draft built at
// staging time is recovered by correlation id, the intent state is verified
// with the provider, and only a terminal success submits the sale. The
// staged record is consumed on success and kept for retry on failure.
func (s *CheckoutService) CompleteHostedCheckout(ctx context.Context, sessionID string, correlationID uuid.UUID) (*CheckoutResult, error) {
	pending, err := s.pendings.Get(ctx, correlationID)
	if err != nil {
		return nil, err
	}
	if pending.SessionID != sessionID {
		return nil, checkout.ErrPendingNotFound
	}

	confirmer := checkout.NewHostedElementConfirmer(s.verifier, pending.ClientSecret)
	draft := pending.Draft
	confirmation, err := confirmer.Confirm(ctx, &draft)
	if err != nil {
		return nil, err
	}

	sale, err := s.finalize(ctx, pending.SessionID, &draft, pending.StockBaseline)
	if err != nil {
		return nil, err
	}

	// Same rationale as finalize: the sale stands, so the staged record is
	// removed even if the request context is already gone.
	if err := s.pendings.Delete(context.WithoutCancel(ctx), correlationID); err != nil {
		s.logger.Warn("Failed to delete staged checkout",
			zap.String("correlation_id", correlationID.String()),
			zap.Error(err))
	}

	return &CheckoutResult{
		Sale:         sale,
		Confirmation: confirmation,
	}, nil
}

// SalesHistory returns the signed-in user's purchase history.
func (s *CheckoutService) SalesHistory(ctx context.Context) ([]checkout.PersistedSale, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, checkout.ErrUnauthenticated
	}

	return s.sales.SalesByCustomer(ctx, user.ID)
}
