package gateway

import (
	"context"
	"fmt"
	"time"
)

// SupplierOrderStatusPending marks supplier orders that can still be
// received or cancelled.
const SupplierOrderStatusPending = "pendiente"

// SupplierOrder mirrors the backend's orden de proveedor record.
type SupplierOrder struct {
	ID         int64     `json:"id_orden_proveedor"`
	ProviderID int64     `json:"id_proveedor"`
	OrderedAt  time.Time `json:"fecha_orden"`
	Status     string    `json:"estado"`
	Total      float64   `json:"total"`
}

// CreateSupplierOrderRequest is the JSON body for supplier-order creation.
type CreateSupplierOrderRequest struct {
	ProviderID int64   `json:"id_proveedor"`
	Status     string  `json:"estado"`
	Total      float64 `json:"total"`
}

// ListSupplierOrders fetches the full supplier-order collection in server
// order.
func (c *Client) ListSupplierOrders(ctx context.Context) ([]SupplierOrder, error) {
	var orders []SupplierOrder
	if err := c.get(ctx, "list supplier orders", "/ordenes", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateSupplierOrder posts a new supplier order and returns its assigned id.
func (c *Client) CreateSupplierOrder(ctx context.Context, req CreateSupplierOrderRequest) (int64, error) {
	var created createResponse
	if err := c.post(ctx, "create supplier order", "/ordenes", req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// ListSupplierOrderLines fetches the line items of one supplier order.
func (c *Client) ListSupplierOrderLines(ctx context.Context, orderID int64) ([]LineItem, error) {
	var lines []LineItem
	path := fmt.Sprintf("/ordenes/%d/productos", orderID)
	if err := c.get(ctx, "list supplier order lines", path, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddSupplierOrderLine attaches one line item to an existing supplier order.
func (c *Client) AddSupplierOrderLine(ctx context.Context, orderID int64, line LineItem) error {
	path := fmt.Sprintf("/ordenes/%d/productos", orderID)
	return c.post(ctx, "add supplier order line", path, line, nil)
}

// ReceiveSupplierOrder marks a supplier order as received. The backend
// raises stock levels as a side effect, so callers refresh the product
// list afterwards.
func (c *Client) ReceiveSupplierOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/ordenes/%d/recibir", orderID)
	return c.post(ctx, "receive supplier order", path, nil, nil)
}

// CancelSupplierOrder transitions a supplier order to its cancelled state.
func (c *Client) CancelSupplierOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/ordenes/%d/cancelar", orderID)
	return c.post(ctx, "cancel supplier order", path, nil, nil)
}
