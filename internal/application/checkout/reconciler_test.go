package checkout

import (
	"context"
	"testing"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestStockReconciler_MissingBaselineIsReportedNotFatal(t *testing.T) {
	catalog := new(MockProductCatalog)
	reconciler := NewStockReconciler(catalog, zap.NewNop())

	catalog.On("UpdateStock", mock.Anything, "p1", 7).Return(nil)

	partial := reconciler.Reconcile(context.Background(), "v1",
		map[string]int{"p1": 9},
		[]checkout.SaleLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		})

	assert.NotNil(t, partial)
	assert.Len(t, partial.Failures, 1)
	assert.Equal(t, "p2", partial.Failures[0].ProductID)
	catalog.AssertExpectations(t)
}

func TestStockReconciler_AllSucceed(t *testing.T) {
	catalog := new(MockProductCatalog)
	reconciler := NewStockReconciler(catalog, zap.NewNop())

	catalog.On("UpdateStock", mock.Anything, "p1", 4).Return(nil)
	catalog.On("UpdateStock", mock.Anything, "p2", 0).Return(nil)

	partial := reconciler.Reconcile(context.Background(), "v1",
		map[string]int{"p1": 5, "p2": 2},
		[]checkout.SaleLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 2},
		})

	assert.Nil(t, partial)
	catalog.AssertNumberOfCalls(t, "UpdateStock", 2)
}
