package gateway

import (
	"context"
	"fmt"
	"time"
)

// SaleStatusCompleted marks sales that can still be cancelled.
const SaleStatusCompleted = "completada"

// Sale mirrors the backend's venta record.
type Sale struct {
	ID     int64     `json:"id_venta"`
	SoldAt time.Time `json:"fecha_venta"`
	Status string    `json:"estado"`
	Total  float64   `json:"total"`
}

// CreateSaleRequest is the JSON body for sale creation.
type CreateSaleRequest struct {
	Status string  `json:"estado"`
	Total  float64 `json:"total"`
}

// ListSales fetches the full sale collection in server order.
func (c *Client) ListSales(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	if err := c.get(ctx, "list sales", "/ventas", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CreateSale posts a new sale and returns its assigned id.
func (c *Client) CreateSale(ctx context.Context, req CreateSaleRequest) (int64, error) {
	var created createResponse
	if err := c.post(ctx, "create sale", "/ventas", req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// ListSaleLines fetches the line items of one sale.
func (c *Client) ListSaleLines(ctx context.Context, saleID int64) ([]LineItem, error) {
	var lines []LineItem
	path := fmt.Sprintf("/ventas/%d/productos", saleID)
	if err := c.get(ctx, "list sale lines", path, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddSaleLine attaches one line item to an existing sale.
func (c *Client) AddSaleLine(ctx context.Context, saleID int64, line LineItem) error {
	path := fmt.Sprintf("/ventas/%d/productos", saleID)
	return c.post(ctx, "add sale line", path, line, nil)
}

// CancelSale transitions a sale to its cancelled state.
func (c *Client) CancelSale(ctx context.Context, saleID int64) error {
	path := fmt.Sprintf("/ventas/%d/cancelar", saleID)
	return c.post(ctx, "cancel sale", path, nil, nil)
}
