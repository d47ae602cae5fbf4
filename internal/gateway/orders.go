package gateway

import (
	"context"
	"fmt"
	"time"
)

// OrderStatusPending marks customer orders that can still be cancelled.
const OrderStatusPending = "pendiente"

// Order mirrors the backend's pedido record.
type Order struct {
	ID        int64     `json:"id_pedido"`
	OrderedAt time.Time `json:"fecha_pedido"`
	Status    string    `json:"estado"`
	Total     float64   `json:"total"`
}

// CreateOrderRequest is the JSON body for customer-order creation. Line
// items are posted separately, one call per line.
type CreateOrderRequest struct {
	Status string  `json:"estado"`
	Total  float64 `json:"total"`
}

// ListOrders fetches the full customer-order collection in server order.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "list orders", "/pedidos", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder posts a new customer order and returns its assigned id.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	var created createResponse
	if err := c.post(ctx, "create order", "/pedidos", req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// ListOrderLines fetches the line items of one customer order.
func (c *Client) ListOrderLines(ctx context.Context, orderID int64) ([]LineItem, error) {
	var lines []LineItem
	path := fmt.Sprintf("/pedidos/%d/productos", orderID)
	if err := c.get(ctx, "list order lines", path, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddOrderLine attaches one line item to an existing customer order.
func (c *Client) AddOrderLine(ctx context.Context, orderID int64, line LineItem) error {
	path := fmt.Sprintf("/pedidos/%d/productos", orderID)
	return c.post(ctx, "add order line", path, line, nil)
}

// CancelOrder transitions a customer order to its cancelled state.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/pedidos/%d/cancelar", orderID)
	return c.post(ctx, "cancel order", path, nil, nil)
}
