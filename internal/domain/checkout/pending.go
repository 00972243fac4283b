package checkout

import (
	"time"

	"github.com/google/uuid"
)

// PendingCheckout is the serializable record staged before the hosted
// payment element round trip. The provider step may suspend or reload the
// client view, so the exact draft built before the redirect is recovered
// from this record, keyed by correlation id, instead of an ambient slot.
type PendingCheckout struct {
	CorrelationID uuid.UUID      `json:"correlation_id"`
	SessionID     string         `json:"session_id"`
	Draft         SaleDraft      `json:"draft"`
	StockBaseline map[string]int `json:"stock_baseline"`
	ClientSecret  string         `json:"client_secret"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewPendingCheckout stages a draft for the hosted flow.
func NewPendingCheckout(sessionID string, draft SaleDraft, baseline map[string]int, clientSecret string) *PendingCheckout {
	return &PendingCheckout{
		CorrelationID: uuid.New(),
		SessionID:     sessionID,
		Draft:         draft,
		StockBaseline: baseline,
		ClientSecret:  clientSecret,
		CreatedAt:     time.Now(),
	}
}
