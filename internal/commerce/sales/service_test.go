package sales

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altiplano/backoffice/internal/gateway"
)

type fakeAPI struct {
	sales    []gateway.Sale
	products []gateway.Product
	lines    map[int64][]gateway.LineItem

	createdSales []gateway.CreateSaleRequest
	addedLines   []gateway.LineItem
}

func (f *fakeAPI) ListSales(ctx context.Context) ([]gateway.Sale, error) {
	return f.sales, nil
}

func (f *fakeAPI) CreateSale(ctx context.Context, req gateway.CreateSaleRequest) (int64, error) {
	f.createdSales = append(f.createdSales, req)
	return 31, nil
}

func (f *fakeAPI) ListSaleLines(ctx context.Context, saleID int64) ([]gateway.LineItem, error) {
	return f.lines[saleID], nil
}

func (f *fakeAPI) AddSaleLine(ctx context.Context, saleID int64, line gateway.LineItem) error {
	f.addedLines = append(f.addedLines, line)
	return nil
}

func (f *fakeAPI) CancelSale(ctx context.Context, saleID int64) error {
	return nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]gateway.Product, error) {
	return f.products, nil
}

func TestRowsMarkCompletedSalesCancellable(t *testing.T) {
	api := &fakeAPI{sales: []gateway.Sale{
		{ID: 1, Status: gateway.SaleStatusCompleted},
		{ID: 2, Status: "cancelada"},
	}}
	svc := NewService(api)

	rows, err := svc.Rows(context.Background())
	require.NoError(t, err)
	require.True(t, rows[0].CanCancel)
	require.False(t, rows[1].CanCancel)
}

func TestCreateSaleUsesCompletedStatusAndCurrentPrices(t *testing.T) {
	api := &fakeAPI{products: []gateway.Product{{ID: 4, Price: 12.5}}}
	svc := NewService(api)

	form := url.Values{"producto_id": {"4"}, "cantidad": {"2"}}
	require.NoError(t, svc.Create(context.Background(), form))

	require.Len(t, api.createdSales, 1)
	require.Equal(t, gateway.SaleStatusCompleted, api.createdSales[0].Status)
	require.InDelta(t, 25.0, api.createdSales[0].Total, 0.0001)
	require.Len(t, api.addedLines, 1)
}

func TestCreateSaleRejectsInvalidDraft(t *testing.T) {
	api := &fakeAPI{products: []gateway.Product{{ID: 4, Price: 12.5}}}
	svc := NewService(api)

	form := url.Values{"producto_id": {"4"}, "cantidad": {"0"}}
	require.Error(t, svc.Create(context.Background(), form))
	require.Empty(t, api.createdSales)
}

func TestSaleDetailsTotal(t *testing.T) {
	api := &fakeAPI{lines: map[int64][]gateway.LineItem{
		8: {{Subtotal: 5}, {Subtotal: 2.5}},
	}}
	svc := NewService(api)

	detail, err := svc.Details(context.Background(), 8)
	require.NoError(t, err)
	require.InDelta(t, 7.5, detail.Total, 0.0001)
}
