package checkout

import (
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// Errors created via NewSubmissionError carry distinct messages but
// still match ErrSubmissionFailed through this method.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the checkout taxonomy
const (
	CodeCartEmpty           = "CART_EMPTY"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeStockExceeded       = "STOCK_EXCEEDED"
	CodePaymentNotConfirmed = "PAYMENT_NOT_CONFIRMED"
	CodeSubmissionFailed    = "SUBMISSION_FAILED"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodePendingNotFound     = "PENDING_NOT_FOUND"
	CodeInvalidDeliveryMode = "INVALID_DELIVERY_MODE"
)

// Common domain errors
var (
	ErrCartEmpty           = NewDomainError(CodeCartEmpty, "Cart has no lines")
	ErrUnauthenticated     = NewDomainError(CodeUnauthenticated, "No authenticated user for this session")
	ErrStockExceeded       = NewDomainError(CodeStockExceeded, "Requested quantity exceeds available stock")
	ErrPaymentNotConfirmed = NewDomainError(CodePaymentNotConfirmed, "Payment was not confirmed")
	ErrSubmissionFailed    = NewDomainError(CodeSubmissionFailed, "Sale submission failed")
	ErrProductNotFound     = NewDomainError(CodeProductNotFound, "Product not found in catalog")
	ErrPendingNotFound     = NewDomainError(CodePendingNotFound, "No staged checkout for this correlation id")
	ErrInvalidDeliveryMode = NewDomainError(CodeInvalidDeliveryMode, "Delivery mode must be store or home")
)

// NewSubmissionError wraps an upstream failure message while remaining
// matchable against ErrSubmissionFailed via errors.Is.
func NewSubmissionError(upstream string) *DomainError {
	return NewDomainError(CodeSubmissionFailed, fmt.Sprintf("Sale submission failed: %s", upstream))
}

// NewPaymentDeclinedError describes why a confirmation step did not reach
// a terminal success state.
func NewPaymentDeclinedError(reason string) *DomainError {
	return NewDomainError(CodePaymentNotConfirmed, fmt.Sprintf("Payment was not confirmed: %s", reason))
}

// StockUpdateFailure records one failed stock decrement during reconciliation.
type StockUpdateFailure struct {
	ProductID string
	Err       error
}

// PartialFailure aggregates failed stock decrements after a successful sale.
// It is logged, never surfaced as a blocking error: the sale stands.
type PartialFailure struct {
	SaleID   string
	Failures []StockUpdateFailure
}

// Error implements the error interface
func (p *PartialFailure) Error() string {
	ids := make([]string, len(p.Failures))
	for i, f := range p.Failures {
		ids[i] = f.ProductID
	}
	return fmt.Sprintf("stock reconciliation incomplete for sale %s: products [%s]",
		p.SaleID, strings.Join(ids, ", "))
}
