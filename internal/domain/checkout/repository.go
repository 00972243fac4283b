package checkout

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository is the durable slot holding a session's cart. It is the
// single source of truth for what the customer intends to buy. A malformed
// persisted payload must degrade to an empty cart, never an error.
//
// Subscribe delivers a signal whenever another writer saves or clears the
// same session's cart, so a view can reload. Resolution is last-writer-wins;
// there is no merge.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
	Subscribe(ctx context.Context, sessionID string) (<-chan struct{}, func(), error)
}

// PendingCheckoutStore holds staged hosted-flow checkouts across the
// provider round trip. Records are TTL-bounded; an abandoned flow simply
// expires without touching cart or gateway.
type PendingCheckoutStore interface {
	Put(ctx context.Context, pending *PendingCheckout) error
	Get(ctx context.Context, correlationID uuid.UUID) (*PendingCheckout, error)
	Delete(ctx context.Context, correlationID uuid.UUID) error
}

// CurrentUserProvider resolves the user attached to the request session.
// A nil user with nil error means no one is signed in.
type CurrentUserProvider interface {
	CurrentUser(ctx context.Context) (*User, error)
}
