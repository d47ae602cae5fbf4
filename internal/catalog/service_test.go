package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altiplano/backoffice/internal/gateway"
)

type stubAPI struct {
	products  []gateway.Product
	providers []gateway.Provider
	created   []any
	err       error
}

func (s *stubAPI) ListProducts(ctx context.Context) ([]gateway.Product, error) {
	return s.products, s.err
}

func (s *stubAPI) CreateProduct(ctx context.Context, req gateway.CreateProductRequest) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.created = append(s.created, req)
	return int64(len(s.created)), nil
}

func (s *stubAPI) ListProviders(ctx context.Context) ([]gateway.Provider, error) {
	return s.providers, s.err
}

func (s *stubAPI) CreateProvider(ctx context.Context, req gateway.CreateProviderRequest) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.created = append(s.created, req)
	return int64(len(s.created)), nil
}

func TestProductsFlagLowStockRows(t *testing.T) {
	api := &stubAPI{products: []gateway.Product{
		{ID: 1, Name: "Cafe", Stock: 3},
		{ID: 2, Name: "Azucar", Stock: 6},
		{ID: 3, Name: "Sal", Stock: 5},
	}}
	svc := NewService(api)

	rows, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.True(t, rows[0].LowStock)
	require.False(t, rows[1].LowStock)
	require.True(t, rows[2].LowStock)
	// server order preserved verbatim
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, int64(3), rows[2].ID)
}

func TestProductOptionsLabel(t *testing.T) {
	options := BuildProductOptions([]gateway.Product{
		{ID: 9, Name: "Cafe", Price: 120.5, Stock: 4},
	})
	require.Len(t, options, 1)
	require.Equal(t, int64(9), options[0].ID)
	require.Contains(t, options[0].Label, "Cafe")
	require.Contains(t, options[0].Label, "(4 unidades)")
	require.InDelta(t, 120.5, options[0].Price, 0.0001)
}

func TestCreateProductValidation(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)
	ctx := context.Background()

	err := svc.CreateProduct(ctx, gateway.CreateProductRequest{Name: "", ProviderID: 1})
	require.Error(t, err)
	require.Empty(t, api.created)

	err = svc.CreateProduct(ctx, gateway.CreateProductRequest{Name: "Cafe", Price: 10, Stock: 2, ProviderID: 1})
	require.NoError(t, err)
	require.Len(t, api.created, 1)
}

func TestCreateProviderValidation(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)
	ctx := context.Background()

	err := svc.CreateProvider(ctx, gateway.CreateProviderRequest{Name: "Acme", Email: "not-an-email"})
	require.Error(t, err)
	require.Empty(t, api.created)

	err = svc.CreateProvider(ctx, gateway.CreateProviderRequest{Name: "Acme", Email: "ventas@acme.test"})
	require.NoError(t, err)
	require.Len(t, api.created, 1)
}

func TestProductsSurfacesBackendFailure(t *testing.T) {
	api := &stubAPI{err: errors.New("boom")}
	svc := NewService(api)
	_, err := svc.Products(context.Background())
	require.Error(t, err)
}
