package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/shopspring/decimal"
)

// productDocument mirrors the upstream product schema. Prices arrive as JSON
// numbers and are converted to decimals at the boundary.
type productDocument struct {
	ID       string  `json:"_id"`
	Name     string  `json:"nombre"`
	Category string  `json:"categoria"`
	Price    float64 `json:"precioVenta"`
	Stock    int     `json:"stock"`
	Image    string  `json:"imagen"`
}

func (d productDocument) toDomain() checkout.Product {
	return checkout.Product{
		ID:        d.ID,
		Name:      d.Name,
		Category:  d.Category,
		UnitPrice: decimal.NewFromFloat(d.Price),
		Stock:     d.Stock,
		ImageRef:  d.Image,
	}
}

// ProductGateway implements checkout.ProductCatalog against the upstream
// product API.
type ProductGateway struct {
	client *Client
}

// NewProductGateway creates a product gateway on the shared upstream client.
func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

// ListProducts fetches the full catalog with live stock.
func (g *ProductGateway) ListProducts(ctx context.Context) ([]checkout.Product, error) {
	var docs []productDocument
	if err := g.client.doJSON(ctx, http.MethodGet, "/productos", nil, &docs); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]checkout.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toDomain()
	}
	return products, nil
}

// GetProduct fetches a single product by id. An upstream 404 maps to
// checkout.ErrProductNotFound.
func (g *ProductGateway) GetProduct(ctx context.Context, productID string) (*checkout.Product, error) {
	var doc productDocument
	if err := g.client.doJSON(ctx, http.MethodGet, "/productos/"+productID, nil, &doc); err != nil {
		if IsNotFound(err) {
			return nil, checkout.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := doc.toDomain()
	return &product, nil
}

// UpdateStock writes the absolute stock level for one product. The upstream
// accepts partial updates, so only the stock field is sent.
func (g *ProductGateway) UpdateStock(ctx context.Context, productID string, newStock int) error {
	body := map[string]int{"stock": newStock}
	if err := g.client.doJSON(ctx, http.MethodPut, "/productos/"+productID, body, nil); err != nil {
		return fmt.Errorf("failed to update stock for product %s: %w", productID, err)
	}
	return nil
}

var _ checkout.ProductCatalog = (*ProductGateway)(nil)
