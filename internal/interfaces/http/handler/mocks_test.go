package handler

import (
	"context"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository implements checkout.CartRepository for testing
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Load(ctx context.Context, sessionID string) (*checkout.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, sessionID string, cart *checkout.Cart) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCartRepository) Subscribe(ctx context.Context, sessionID string) (<-chan struct{}, func(), error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(chan struct{}), args.Get(1).(func()), args.Error(2)
}

// MockPendingCheckoutStore implements checkout.PendingCheckoutStore for testing
type MockPendingCheckoutStore struct {
	mock.Mock
}

func (m *MockPendingCheckoutStore) Put(ctx context.Context, pending *checkout.PendingCheckout) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingCheckoutStore) Get(ctx context.Context, correlationID uuid.UUID) (*checkout.PendingCheckout, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PendingCheckout), args.Error(1)
}

func (m *MockPendingCheckoutStore) Delete(ctx context.Context, correlationID uuid.UUID) error {
	args := m.Called(ctx, correlationID)
	return args.Error(0)
}

// MockSaleGateway implements checkout.SaleGateway for testing
type MockSaleGateway struct {
	mock.Mock
}

func (m *MockSaleGateway) SubmitSale(ctx context.Context, draft *checkout.SaleDraft) (*checkout.PersistedSale, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PersistedSale), args.Error(1)
}

func (m *MockSaleGateway) SalesByCustomer(ctx context.Context, customerID string) ([]checkout.PersistedSale, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.PersistedSale), args.Error(1)
}

// MockProductCatalog implements checkout.ProductCatalog for testing
type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) ListProducts(ctx context.Context) ([]checkout.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.Product), args.Error(1)
}

func (m *MockProductCatalog) GetProduct(ctx context.Context, productID string) (*checkout.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Product), args.Error(1)
}

func (m *MockProductCatalog) UpdateStock(ctx context.Context, productID string, newStock int) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

// MockPaymentIntentService implements checkout.PaymentIntentService for testing
type MockPaymentIntentService struct {
	mock.Mock
}

func (m *MockPaymentIntentService) CreateIntent(ctx context.Context, amount decimal.Decimal, description string) (string, error) {
	args := m.Called(ctx, amount, description)
	return args.String(0), args.Error(1)
}

// MockPaymentIntentVerifier implements checkout.PaymentIntentVerifier for testing
type MockPaymentIntentVerifier struct {
	mock.Mock
}

func (m *MockPaymentIntentVerifier) IntentState(ctx context.Context, clientSecret string) (string, string, error) {
	args := m.Called(ctx, clientSecret)
	return args.String(0), args.String(1), args.Error(2)
}
