package dto

import (
	"net/http"

	"github.com/cafepos/backend/internal/domain/checkout"
)

// General error codes not covered by the checkout taxonomy
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when request body parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Checkout domain
// codes pass through to the API unchanged; raw upstream messages never do.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,

	checkout.CodeCartEmpty:           http.StatusUnprocessableEntity,
	checkout.CodeUnauthenticated:     http.StatusUnauthorized,
	checkout.CodeStockExceeded:       http.StatusUnprocessableEntity,
	checkout.CodePaymentNotConfirmed: http.StatusPaymentRequired,
	checkout.CodeSubmissionFailed:    http.StatusBadGateway,
	checkout.CodeProductNotFound:     http.StatusNotFound,
	checkout.CodePendingNotFound:     http.StatusNotFound,
	checkout.CodeInvalidDeliveryMode: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
