// Package orders drives the customer-order (pedidos) views and actions.
package orders

import (
	"context"
	"fmt"
	"net/url"

	"github.com/altiplano/backoffice/internal/commerce/shared"
	"github.com/altiplano/backoffice/internal/gateway"
)

// API is the slice of the backend gateway the order module needs.
type API interface {
	ListOrders(ctx context.Context) ([]gateway.Order, error)
	CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (int64, error)
	ListOrderLines(ctx context.Context, orderID int64) ([]gateway.LineItem, error)
	AddOrderLine(ctx context.Context, orderID int64, line gateway.LineItem) error
	CancelOrder(ctx context.Context, orderID int64) error
	ListProducts(ctx context.Context) ([]gateway.Product, error)
}

// Row is one rendered customer-order table row.
type Row struct {
	gateway.Order
	CanCancel bool
}

// Detail is a customer order's line items with the total re-derived from
// the subtotals rather than trusted from the parent record.
type Detail struct {
	ID    int64
	Lines []gateway.LineItem
	Total float64
}

// Service loads and mutates customer orders through the gateway.
type Service struct {
	api API
}

// NewService constructs an order service.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Rows fetches all customer orders in server order.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, Row{Order: o, CanCancel: o.Status == gateway.OrderStatusPending})
	}
	return rows, nil
}

// Create validates a submitted draft, prices each line with the product's
// current price, creates the order and then posts every line item
// sequentially. A parent failure stops everything; a line failure leaves
// the already-created lines in place.
func (s *Service) Create(ctx context.Context, form url.Values) error {
	draft := shared.ParseForm(form, false)
	if err := s.priceLines(ctx, draft); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("validate order: %w", err)
	}

	id, err := s.api.CreateOrder(ctx, gateway.CreateOrderRequest{
		Status: gateway.OrderStatusPending,
		Total:  draft.Total(),
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for i, line := range draft.LineItems() {
		if err := s.api.AddOrderLine(ctx, id, line); err != nil {
			return &shared.PartialCreateError{Entity: "pedido", ID: id, LinesAdded: i, Err: err}
		}
	}
	return nil
}

// priceLines resolves each selected product's current price from the
// latest product fetch.
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

// Details fetches one order's line items and recomputes the total.
func (s *Service) Details(ctx context.Context, orderID int64) (Detail, error) {
	lines, err := s.api.ListOrderLines(ctx, orderID)
	if err != nil {
		return Detail{}, fmt.Errorf("load order %d lines: %w", orderID, err)
	}
	return Detail{ID: orderID, Lines: lines, Total: shared.DetailTotal(lines)}, nil
}

// Cancel transitions a pending order to cancelled.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	if err := s.api.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return nil
}
