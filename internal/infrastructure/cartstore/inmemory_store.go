package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/google/uuid"
)

type pendingEntry struct {
	pending   *checkout.PendingCheckout
	expiresAt time.Time
}

// InMemoryCartStore is a process-local implementation of
// checkout.CartRepository and checkout.PendingCheckoutStore. Carts do not
// survive a restart; intended for development and tests.
type InMemoryCartStore struct {
	mu          sync.RWMutex
	carts       map[string]*checkout.Cart
	pending     map[uuid.UUID]pendingEntry
	subscribers map[string][]chan struct{}
	pendingTTL  time.Duration
}

// NewInMemoryCartStore creates an empty in-memory store.
func NewInMemoryCartStore(pendingTTL time.Duration) *InMemoryCartStore {
	return &InMemoryCartStore{
		carts:       make(map[string]*checkout.Cart),
		pending:     make(map[uuid.UUID]pendingEntry),
		subscribers: make(map[string][]chan struct{}),
		pendingTTL:  pendingTTL,
	}
}

func (s *InMemoryCartStore) Load(ctx context.Context, sessionID string) (*checkout.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return checkout.NewCart(), nil
	}
	return cart.Copy(), nil
}

func (s *InMemoryCartStore) Save(ctx context.Context, sessionID string, cart *checkout.Cart) error {
	s.mu.Lock()
	s.carts[sessionID] = cart.Copy()
	s.mu.Unlock()

	s.notify(sessionID)
	return nil
}

func (s *InMemoryCartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()

	s.notify(sessionID)
	return nil
}

func (s *InMemoryCartStore) Subscribe(ctx context.Context, sessionID string) (<-chan struct{}, func(), error) {
	signals := make(chan struct{}, 1)

	s.mu.Lock()
	s.subscribers[sessionID] = append(s.subscribers[sessionID], signals)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[sessionID]
		for i, ch := range subs {
			if ch == signals {
				s.subscribers[sessionID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
	}
	return signals, cancel, nil
}

func (s *InMemoryCartStore) notify(sessionID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers[sessionID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *InMemoryCartStore) Put(ctx context.Context, pending *checkout.PendingCheckout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[pending.CorrelationID] = pendingEntry{
		pending:   pending,
		expiresAt: time.Now().Add(s.pendingTTL),
	}
	return nil
}

func (s *InMemoryCartStore) Get(ctx context.Context, correlationID uuid.UUID) (*checkout.PendingCheckout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.pending[correlationID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, checkout.ErrPendingNotFound
	}
	return entry.pending, nil
}

func (s *InMemoryCartStore) Delete(ctx context.Context, correlationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, correlationID)
	return nil
}

var (
	_ checkout.CartRepository       = (*InMemoryCartStore)(nil)
	_ checkout.PendingCheckoutStore = (*InMemoryCartStore)(nil)
)
