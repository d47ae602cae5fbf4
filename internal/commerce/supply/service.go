// Package supply drives the supplier-order (órdenes de proveedor) views
// and actions.
package supply

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/altiplano/backoffice/internal/commerce/shared"
	"github.com/altiplano/backoffice/internal/gateway"
)

// API is the slice of the backend gateway the supply module needs.
type API interface {
	ListSupplierOrders(ctx context.Context) ([]gateway.SupplierOrder, error)
	CreateSupplierOrder(ctx context.Context, req gateway.CreateSupplierOrderRequest) (int64, error)
	ListSupplierOrderLines(ctx context.Context, orderID int64) ([]gateway.LineItem, error)
	AddSupplierOrderLine(ctx context.Context, orderID int64, line gateway.LineItem) error
	ReceiveSupplierOrder(ctx context.Context, orderID int64) error
	CancelSupplierOrder(ctx context.Context, orderID int64) error
	ListProviders(ctx context.Context) ([]gateway.Provider, error)
}

// Row is one rendered supplier-order table row. ProviderName falls back to
// the raw identifier when the provider lookup has no entry.
type Row struct {
	gateway.SupplierOrder
	ProviderName string
	CanAct       bool
}

// Detail is a supplier order's line items with the total re-derived from
// subtotals.
type Detail struct {
	ID    int64
	Lines []gateway.LineItem
	Total float64
}

// Service loads and mutates supplier orders through the gateway.
type Service struct {
	api API
}

// NewService constructs a supply service.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Rows fetches all supplier orders plus the provider collection to resolve
// names for display. The provider fetch happens on every render, never
// cached; both round-trips run concurrently.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	var (
		orders    []gateway.SupplierOrder
		providers []gateway.Provider
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.api.ListSupplierOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		providers, err = s.api.ListProviders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load supplier orders: %w", err)
	}

	names := make(map[int64]string, len(providers))
	for _, p := range providers {
		names[p.ID] = p.Name
	}

	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		name := names[o.ProviderID]
		if name == "" {
			name = strconv.FormatInt(o.ProviderID, 10)
		}
		rows = append(rows, Row{
			SupplierOrder: o,
			ProviderName:  name,
			CanAct:        o.Status == gateway.SupplierOrderStatusPending,
		})
	}
	return rows, nil
}

// Create validates a submitted draft with operator-entered unit prices,
// creates the supplier order and posts every line item sequentially.
func (s *Service) Create(ctx context.Context, form url.Values) error {
	providerID, _ := strconv.ParseInt(form.Get("id_proveedor"), 10, 64)
	if providerID <= 0 {
		return fmt.Errorf("a provider must be selected")
	}

	draft := shared.ParseForm(form, true)
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("validate supplier order: %w", err)
	}

	id, err := s.api.CreateSupplierOrder(ctx, gateway.CreateSupplierOrderRequest{
		ProviderID: providerID,
		Status:     gateway.SupplierOrderStatusPending,
		Total:      draft.Total(),
	})
	if err != nil {
		return fmt.Errorf("create supplier order: %w", err)
	}

	for i, line := range draft.LineItems() {
		if err := s.api.AddSupplierOrderLine(ctx, id, line); err != nil {
			return &shared.PartialCreateError{Entity: "orden", ID: id, LinesAdded: i, Err: err}
		}
	}
	return nil
}

// Details fetches one supplier order's line items and recomputes the total.
func (s *Service) Details(ctx context.Context, orderID int64) (Detail, error) {
	lines, err := s.api.ListSupplierOrderLines(ctx, orderID)
	if err != nil {
		return Detail{}, fmt.Errorf("load supplier order %d lines: %w", orderID, err)
	}
	return Detail{ID: orderID, Lines: lines, Total: shared.DetailTotal(lines)}, nil
}

// Receive marks a pending supplier order as received. Stock rises
// server-side, so the caller refreshes the product list afterwards.
func (s *Service) Receive(ctx context.Context, orderID int64) error {
	if err := s.api.ReceiveSupplierOrder(ctx, orderID); err != nil {
		return fmt.Errorf("receive supplier order %d: %w", orderID, err)
	}
	return nil
}

// Cancel transitions a pending supplier order to cancelled.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	if err := s.api.CancelSupplierOrder(ctx, orderID); err != nil {
		return fmt.Errorf("cancel supplier order %d: %w", orderID, err)
	}
	return nil
}
