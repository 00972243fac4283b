package checkout

import (
	"context"
	"errors"

	"github.com/cafepos/backend/internal/domain/checkout"
)

// CartService handles cart business operations. Every mutation is written
// through to the repository so other views of the same session converge.
type CartService struct {
	carts   checkout.CartRepository
	catalog checkout.ProductCatalog
}

// NewCartService creates a new CartService
func NewCartService(carts checkout.CartRepository, catalog checkout.ProductCatalog) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// View returns the current cart for the session.
func (s *CartService) View(ctx context.Context, sessionID string) (*checkout.Cart, error) {
	return s.carts.Load(ctx, sessionID)
}

// AddItem adds quantity of a product to the session's cart. Stock is read
// live from the catalog so the cap reflects what is actually available.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*checkout.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(*product, quantity); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. A request beyond
// available stock is clamped to the cap, persisted, and reported through the
// clamped flag so the caller can surface it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*checkout.Cart, bool, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	clamped := false
	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		if !errors.Is(err, checkout.ErrStockExceeded) {
			return nil, false, err
		}
		clamped = true
	}

	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, false, err
	}
	return cart, clamped, nil
}

// RemoveItem removes a line from the cart. Removing an absent product is a
// no-op that still returns the current cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*checkout.Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}

// Totals prices the current cart under the given delivery mode.
func (s *CartService) Totals(ctx context.Context, sessionID string, mode checkout.DeliveryMode) (checkout.PricingBreakdown, error) {
	if !mode.Valid() {
		return checkout.PricingBreakdown{}, checkout.ErrInvalidDeliveryMode
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return checkout.PricingBreakdown{}, err
	}

	return checkout.ComputeTotals(cart, mode), nil
}

// Subscribe exposes cart change notifications for the session.
func (s *CartService) Subscribe(ctx context.Context, sessionID string) (<-chan struct{}, func(), error) {
	return s.carts.Subscribe(ctx, sessionID)
}
