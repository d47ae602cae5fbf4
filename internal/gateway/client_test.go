package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altiplano/backoffice/internal/platform/httpx"
)

func TestListProductsDecodesBackendFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/productos", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "http://localhost", r.Header.Get("Origin"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id_producto":1,"nombre":"Cafe","descripcion":"Molido","precio":120.5,"existencia":3,"id_proveedor":7},
			{"id_producto":2,"nombre":"Azucar","precio":40,"existencia":12,"id_proveedor":7}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api", "http://localhost")
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(1), products[0].ID)
	require.Equal(t, "Cafe", products[0].Name)
	require.Equal(t, "Molido", products[0].Description)
	require.Equal(t, 3, products[0].Stock)
	require.Equal(t, int64(7), products[0].ProviderID)
	require.Empty(t, products[1].Description)
}

func TestCreateOrderReturnsAssignedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/pedidos", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "pendiente", body["estado"])
		require.InDelta(t, 241.0, body["total"], 0.0001)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":99}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api", "")
	id, err := client.CreateOrder(context.Background(), CreateOrderRequest{Status: OrderStatusPending, Total: 241})
	require.NoError(t, err)
	require.Equal(t, int64(99), id)
}

func TestActionEndpointsUseActionSuffixedPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	ctx := context.Background()
	require.NoError(t, client.CancelOrder(ctx, 4))
	require.NoError(t, client.CancelSale(ctx, 5))
	require.NoError(t, client.ReceiveSupplierOrder(ctx, 6))
	require.NoError(t, client.CancelSupplierOrder(ctx, 7))
	require.Equal(t, []string{
		"/pedidos/4/cancelar",
		"/ventas/5/cancelar",
		"/ordenes/6/recibir",
		"/ordenes/7/cancelar",
	}, paths)
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"stock insuficiente"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.CancelOrder(context.Background(), 12)
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "stock insuficiente", apiErr.Message)
	require.Contains(t, apiErr.Error(), "stock insuficiente")
}

func TestAPIErrorWithOpaqueBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.ListSales(context.Background())
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Empty(t, apiErr.Message)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "")
	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	_, ok := AsAPIError(err)
	require.False(t, ok)
}

func TestMalformedCollectionSurfacesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.ListProviders(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
}

type countingRecorder struct {
	calls map[string]int
}

func (r *countingRecorder) CountBackendCall(operation, outcome string) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[operation+"/"+outcome]++
}

func TestRecorderObservesOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/proveedores" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec := &countingRecorder{}
	client := NewClient(srv.URL, "", WithRecorder(rec))
	ctx := context.Background()
	_, err := client.ListProviders(ctx)
	require.NoError(t, err)
	err = client.CancelSale(ctx, 1)
	require.Error(t, err)
	require.Equal(t, 1, rec.calls["list providers/ok"])
	require.Equal(t, 1, rec.calls["cancel sale/api_error"])
}

func TestErrorsMapToResponseSentinels(t *testing.T) {
	require.ErrorIs(t, &APIError{Operation: "load order", Status: http.StatusNotFound}, httpx.ErrNotFound)
	require.ErrorIs(t, &APIError{Operation: "load order", Status: http.StatusBadRequest}, httpx.ErrValidation)
	require.ErrorIs(t, &APIError{Operation: "load order", Status: http.StatusBadGateway}, httpx.ErrUnavailable)

	srv := httptest.NewServer(nil)
	srv.Close() // refuse connections
	client := NewClient(srv.URL, "")
	_, err := client.ListProducts(context.Background())
	require.ErrorIs(t, err, httpx.ErrUnavailable)
}
