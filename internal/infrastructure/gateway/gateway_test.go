package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, nil)
}

func TestProductGateway_ListProducts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/productos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"p1","nombre":"Latte","categoria":"bebidas","precioVenta":3.5,"stock":12,"imagen":"latte.png"},
			{"_id":"p2","nombre":"Croissant","categoria":"panaderia","precioVenta":2.25,"stock":4,"imagen":""}
		]`))
	}))

	products, err := NewProductGateway(client).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Latte", products[0].Name)
	assert.True(t, products[0].UnitPrice.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, 12, products[0].Stock)
}

func TestProductGateway_GetProductNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"producto no encontrado"}`, http.StatusNotFound)
	}))

	_, err := NewProductGateway(client).GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, checkout.ErrProductNotFound)
}

func TestProductGateway_UpdateStockSendsPartialBody(t *testing.T) {
	var captured map[string]int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/productos/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))

	err := NewProductGateway(client).UpdateStock(context.Background(), "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"stock": 7}, captured)
}

func TestSaleGateway_SubmitSaleWirePayload(t *testing.T) {
	var captured map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ventas/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"v1","productos":[{"producto":"p1","cantidad":2,"precioUnitario":3.5,"subtotal":7}],"total":7,"cliente":"u1","empleado":"u1","metodoPago":"efectivo","estado":"pagada","createdAt":"2026-08-30T10:00:00Z"}`))
	}))

	draft := &checkout.SaleDraft{
		Lines: []checkout.SaleLine{{
			ProductID: "p1",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("3.5"),
			Subtotal:  decimal.RequireFromString("7"),
		}},
		Total:         decimal.RequireFromString("7"),
		CustomerID:    "u1",
		OperatorID:    "u1",
		PaymentMethod: checkout.PaymentMethodCash,
		Status:        checkout.SaleStatusPaid,
		Cash: &checkout.CashPayment{
			AmountTendered: decimal.RequireFromString("10"),
			Change:         decimal.RequireFromString("3"),
		},
	}

	sale, err := NewSaleGateway(client).SubmitSale(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "v1", sale.ID)
	assert.Equal(t, checkout.PaymentMethodCash, sale.PaymentMethod)
	assert.Equal(t, checkout.SaleStatusPaid, sale.Status)

	assert.Equal(t, "efectivo", captured["metodoPago"])
	assert.Equal(t, "pagada", captured["estado"])
	assert.Equal(t, "u1", captured["cliente"])
	assert.Equal(t, "u1", captured["empleado"])
	assert.Equal(t, 10.0, captured["pagoCliente"])
	assert.Equal(t, 3.0, captured["cambio"])
	lines := captured["productos"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "p1", line["producto"])
	assert.Equal(t, 2.0, line["cantidad"])
}

func TestSaleGateway_SubmitSaleMethodMapping(t *testing.T) {
	cases := []struct {
		method checkout.PaymentMethod
		wire   string
	}{
		{checkout.PaymentMethodCardHosted, "tarjeta"},
		{checkout.PaymentMethodCardTerminal, "tarjeta física"},
		{checkout.PaymentMethodCash, "efectivo"},
	}

	for _, tc := range cases {
		t.Run(string(tc.method), func(t *testing.T) {
			var captured map[string]interface{}
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
				_, _ = w.Write([]byte(`{"_id":"v1"}`))
			}))

			draft := &checkout.SaleDraft{
				Total:         decimal.RequireFromString("1"),
				PaymentMethod: tc.method,
				Status:        checkout.SaleStatusPaid,
			}
			_, err := NewSaleGateway(client).SubmitSale(context.Background(), draft)
			require.NoError(t, err)
			assert.Equal(t, tc.wire, captured["metodoPago"])
		})
	}
}

func TestSaleGateway_SubmitSaleUpstreamFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"stock insuficiente"}`, http.StatusUnprocessableEntity)
	}))

	_, err := NewSaleGateway(client).SubmitSale(context.Background(), &checkout.SaleDraft{
		Total:  decimal.RequireFromString("1"),
		Status: checkout.SaleStatusPaid,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrSubmissionFailed)
	assert.Contains(t, err.Error(), "stock insuficiente")
}

func TestSaleGateway_SalesByCustomer(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ventas/cliente/u1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"v1","total":7,"cliente":"u1","metodoPago":"tarjeta","estado":"pagada"}]`))
	}))

	sales, err := NewSaleGateway(client).SalesByCustomer(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, checkout.PaymentMethodCardHosted, sales[0].PaymentMethod)
}

func TestSaleGateway_SalesByCustomerNotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	sales, err := NewSaleGateway(client).SalesByCustomer(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestPaymentIntentGateway_CreateIntent(t *testing.T) {
	var captured map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pagos/crear-intent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"clientSecret":"pi_123_secret_456"}`))
	}))

	secret, err := NewPaymentIntentGateway(client).CreateIntent(context.Background(), decimal.RequireFromString("12.5"), "Pago de productos")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)
	assert.Equal(t, 12.5, captured["amount"])
	assert.Equal(t, "Pago de productos", captured["description"])
}

func TestPaymentIntentGateway_EmptySecret(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := NewPaymentIntentGateway(client).CreateIntent(context.Background(), decimal.RequireFromString("1"), "x")
	assert.Error(t, err)
}
