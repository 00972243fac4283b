package checkout

import (
	"context"
	"sync"

	"github.com/cafepos/backend/internal/domain/checkout"
	"go.uber.org/zap"
)

// StockReconciler pushes post-sale stock levels to the catalog. Decrements
// are computed against the stock baseline captured when the draft was built,
// one write per product, all in flight at once.
type StockReconciler struct {
	catalog checkout.ProductCatalog
	logger  *zap.Logger
}

// NewStockReconciler creates a reconciler on the given catalog.
func NewStockReconciler(catalog checkout.ProductCatalog, logger *zap.Logger) *StockReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockReconciler{catalog: catalog, logger: logger}
}

// Reconcile writes new stock levels for every sold line. A line whose
// product is missing from the baseline is skipped and reported. Failures
// never invalidate the sale; the caller gets a PartialFailure to log.
func (r *StockReconciler) Reconcile(ctx context.Context, saleID string, baseline map[string]int, lines []checkout.SaleLine) *checkout.PartialFailure {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []checkout.StockUpdateFailure
	)

	record := func(productID string, err error) {
		mu.Lock()
		failures = append(failures, checkout.StockUpdateFailure{ProductID: productID, Err: err})
		mu.Unlock()
	}

	for _, line := range lines {
		prev, ok := baseline[line.ProductID]
		if !ok {
			record(line.ProductID, checkout.ErrProductNotFound)
			continue
		}

		wg.Add(1)
		go func(productID string, newStock int) {
			defer wg.Done()
			if err := r.catalog.UpdateStock(ctx, productID, newStock); err != nil {
				record(productID, err)
			}
		}(line.ProductID, prev-line.Quantity)
	}
	wg.Wait()

	if len(failures) == 0 {
		return nil
	}

	partial := &checkout.PartialFailure{SaleID: saleID, Failures: failures}
	r.logger.Warn("Stock reconciliation incomplete",
		zap.String("sale_id", saleID),
		zap.Int("failed_products", len(failures)),
		zap.Error(partial))
	return partial
}
