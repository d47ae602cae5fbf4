package supply

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altiplano/backoffice/internal/gateway"
)

type fakeAPI struct {
	orders    []gateway.SupplierOrder
	providers []gateway.Provider
	lines     map[int64][]gateway.LineItem

	created    []gateway.CreateSupplierOrderRequest
	addedLines []gateway.LineItem
	received   []int64
	cancelled  []int64
}

func (f *fakeAPI) ListSupplierOrders(ctx context.Context) ([]gateway.SupplierOrder, error) {
	return f.orders, nil
}

func (f *fakeAPI) CreateSupplierOrder(ctx context.Context, req gateway.CreateSupplierOrderRequest) (int64, error) {
	f.created = append(f.created, req)
	return 55, nil
}

func (f *fakeAPI) ListSupplierOrderLines(ctx context.Context, orderID int64) ([]gateway.LineItem, error) {
	return f.lines[orderID], nil
}

func (f *fakeAPI) AddSupplierOrderLine(ctx context.Context, orderID int64, line gateway.LineItem) error {
	f.addedLines = append(f.addedLines, line)
	return nil
}

func (f *fakeAPI) ReceiveSupplierOrder(ctx context.Context, orderID int64) error {
	f.received = append(f.received, orderID)
	return nil
}

func (f *fakeAPI) CancelSupplierOrder(ctx context.Context, orderID int64) error {
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

func (f *fakeAPI) ListProviders(ctx context.Context) ([]gateway.Provider, error) {
	return f.providers, nil
}

func TestRowsResolveProviderNamesWithFallback(t *testing.T) {
	api := &fakeAPI{
		orders: []gateway.SupplierOrder{
			{ID: 1, ProviderID: 10, Status: gateway.SupplierOrderStatusPending},
			{ID: 2, ProviderID: 99, Status: "recibida"},
		},
		providers: []gateway.Provider{{ID: 10, Name: "Distribuidora Sur"}},
	}
	svc := NewService(api)

	rows, err := svc.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Distribuidora Sur", rows[0].ProviderName)
	require.True(t, rows[0].CanAct)
	// unknown provider falls back to the raw identifier
	require.Equal(t, "99", rows[1].ProviderName)
	require.False(t, rows[1].CanAct)
}

func TestCreateUsesOperatorEnteredPrices(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)

	form := url.Values{
		"id_proveedor":    {"10"},
		"producto_id":     {"3", "4"},
		"cantidad":        {"5", "2"},
		"precio_unitario": {"8.00", "1.50"},
	}
	require.NoError(t, svc.Create(context.Background(), form))

	require.Len(t, api.created, 1)
	require.Equal(t, int64(10), api.created[0].ProviderID)
	require.Equal(t, gateway.SupplierOrderStatusPending, api.created[0].Status)
	require.InDelta(t, 43.0, api.created[0].Total, 0.0001) // 5*8 + 2*1.5
	require.Len(t, api.addedLines, 2)
	require.InDelta(t, 8.0, api.addedLines[0].UnitPrice, 0.0001)
}

func TestCreateRequiresProvider(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)

	form := url.Values{
		"producto_id":     {"3"},
		"cantidad":        {"5"},
		"precio_unitario": {"8.00"},
	}
	require.Error(t, svc.Create(context.Background(), form))
	require.Empty(t, api.created)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)

	form := url.Values{
		"id_proveedor":    {"10"},
		"producto_id":     {"3"},
		"cantidad":        {"5"},
		"precio_unitario": {"-1"},
	}
	require.Error(t, svc.Create(context.Background(), form))
	require.Empty(t, api.created)
}

func TestReceiveAndCancelDelegate(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)
	ctx := context.Background()

	require.NoError(t, svc.Receive(ctx, 7))
	require.NoError(t, svc.Cancel(ctx, 8))
	require.Equal(t, []int64{7}, api.received)
	require.Equal(t, []int64{8}, api.cancelled)
}
