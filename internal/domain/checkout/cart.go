package checkout

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog shape consumed when adding items to a cart.
// It mirrors what the upstream catalog API returns for a single product.
type Product struct {
	ID        string
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	Stock     int
	ImageRef  string
}

// CartLine is a single intended purchase within a cart.
// Invariant: 1 <= Quantity <= AvailableStock. Mutations that would violate
// it are rejected by the cart, never silently truncated.
type CartLine struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	AvailableStock int             `json:"available_stock"`
	Category       string          `json:"category"`
	ImageRef       string          `json:"image_ref"`
}

// Subtotal returns unit price times quantity for this line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the client-held, pre-transaction set of purchase lines.
// Lines are ordered and unique by product id. The cart has no server-side
// representation until a checkout submits it as a sale.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

// Copy returns a deep copy of the cart.
func (c *Cart) Copy() *Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return &Cart{Lines: lines}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Find returns the line for the given product id, or nil.
func (c *Cart) Find(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// AddItem adds quantity of a product to the cart. An existing line has its
// quantity increased; a new product is appended as a fresh line. Attempts
// beyond available stock are rejected with ErrStockExceeded and leave the
// cart unchanged.
func (c *Cart) AddItem(product Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if line := c.Find(product.ID); line != nil {
		newQty := line.Quantity + quantity
		if newQty > line.AvailableStock {
			return ErrStockExceeded
		}
		line.Quantity = newQty
		return nil
	}

	if quantity > product.Stock {
		return ErrStockExceeded
	}
	if product.Stock < 1 {
		return ErrStockExceeded
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.UnitPrice,
		Quantity:       quantity,
		AvailableStock: product.Stock,
		Category:       product.Category,
		ImageRef:       product.ImageRef,
	})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. Values below 1 are
// a no-op. Values above available stock clamp to the known stock and signal
// ErrStockExceeded so the caller can warn; the clamped mutation still
// satisfies the line invariant.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	line := c.Find(productID)
	if line == nil {
		return ErrProductNotFound
	}
	if quantity < 1 {
		return nil
	}
	if quantity > line.AvailableStock {
		line.Quantity = line.AvailableStock
		return ErrStockExceeded
	}
	line.Quantity = quantity
	return nil
}

// RemoveItem removes the line for the given product id. Removing an absent
// product is not an error.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// StockSnapshot captures the last known stock per product id. Reconciliation
// decrements from this baseline after a sale is persisted.
func (c *Cart) StockSnapshot() map[string]int {
	snapshot := make(map[string]int, len(c.Lines))
	for _, line := range c.Lines {
		snapshot[line.ProductID] = line.AvailableStock
	}
	return snapshot
}
