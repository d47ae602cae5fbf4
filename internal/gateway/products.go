package gateway

import "context"

// Product mirrors the backend's producto record.
type Product struct {
	ID          int64   `json:"id_producto"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	Price       float64 `json:"precio"`
	Stock       int     `json:"existencia"`
	ProviderID  int64   `json:"id_proveedor"`
}

// CreateProductRequest is the JSON body for product creation.
type CreateProductRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio" validate:"gte=0"`
	Stock       int     `json:"existencia" validate:"gte=0"`
	ProviderID  int64   `json:"id_proveedor" validate:"required,gt=0"`
}

// ListProducts fetches the full product collection in server order.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "list products", "/productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct posts a new product and returns its assigned id.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (int64, error) {
	var created createResponse
	if err := c.post(ctx, "create product", "/productos", req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
