// Package sales drives the sale (ventas) views and actions.
package sales

import (
	"context"
	"fmt"
	"net/url"

	"github.com/altiplano/backoffice/internal/commerce/shared"
	"github.com/altiplano/backoffice/internal/gateway"
)

// API is the slice of the backend gateway the sales module needs.
type API interface {
	ListSales(ctx context.Context) ([]gateway.Sale, error)
	CreateSale(ctx context.Context, req gateway.CreateSaleRequest) (int64, error)
	ListSaleLines(ctx context.Context, saleID int64) ([]gateway.LineItem, error)
	AddSaleLine(ctx context.Context, saleID int64, line gateway.LineItem) error
	CancelSale(ctx context.Context, saleID int64) error
	ListProducts(ctx context.Context) ([]gateway.Product, error)
}

// Row is one rendered sale table row.
type Row struct {
	gateway.Sale
	CanCancel bool
}

// Detail is a sale's line items with the total re-derived from subtotals.
type Detail struct {
	ID    int64
	Lines []gateway.LineItem
	Total float64
}

// Service loads and mutates sales through the gateway.
type Service struct {
	api API
}

// NewService constructs a sales service.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Rows fetches all sales in server order.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	sales, err := s.api.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	rows := make([]Row, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, Row{Sale: sale, CanCancel: sale.Status == gateway.SaleStatusCompleted})
	}
	return rows, nil
}

// Create validates a submitted draft, prices each line with the product's
// current price, creates the sale and posts every line item sequentially,
// with the same partial-failure window as customer orders.
func (s *Service) Create(ctx context.Context, form url.Values) error {
	draft := shared.ParseForm(form, false)
	if err := s.priceLines(ctx, draft); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("validate sale: %w", err)
	}

	id, err := s.api.CreateSale(ctx, gateway.CreateSaleRequest{
		Status: gateway.SaleStatusCompleted,
		Total:  draft.Total(),
	})
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}

	for i, line := range draft.LineItems() {
		if err := s.api.AddSaleLine(ctx, id, line); err != nil {
			return &shared.PartialCreateError{Entity: "venta", ID: id, LinesAdded: i, Err: err}
		}
	}
	return nil
}

func (s *Service) priceLines(ctx context.Context, draft *shared.Draft) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products for pricing: %w", err)
	}
	prices := make(map[int64]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	for i := range draft.Lines {
		line := &draft.Lines[i]
		if line.ProductID == 0 {
			continue
		}
		price, ok := prices[line.ProductID]
		if !ok {
			return fmt.Errorf("line %d: unknown product %d", i+1, line.ProductID)
		}
		line.UnitPrice = price
	}
	return nil
}

// Details fetches one sale's line items and recomputes the total.
func (s *Service) Details(ctx context.Context, saleID int64) (Detail, error) {
	lines, err := s.api.ListSaleLines(ctx, saleID)
	if err != nil {
		return Detail{}, fmt.Errorf("load sale %d lines: %w", saleID, err)
	}
	return Detail{ID: saleID, Lines: lines, Total: shared.DetailTotal(lines)}, nil
}

// Cancel transitions a completed sale to cancelled.
func (s *Service) Cancel(ctx context.Context, saleID int64) error {
	if err := s.api.CancelSale(ctx, saleID); err != nil {
		return fmt.Errorf("cancel sale %d: %w", saleID, err)
	}
	return nil
}
