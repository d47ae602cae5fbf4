package gateway

import "context"

// Provider mirrors the backend's proveedor record.
type Provider struct {
	ID      int64  `json:"id_proveedor"`
	Name    string `json:"nombre"`
	Address string `json:"direccion,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CreateProviderRequest is the JSON body for provider creation.
type CreateProviderRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// ListProviders fetches the full provider collection in server order.
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := c.get(ctx, "list providers", "/proveedores", &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// CreateProvider posts a new provider and returns its assigned id.
func (c *Client) CreateProvider(ctx context.Context, req CreateProviderRequest) (int64, error) {
	var created createResponse
	if err := c.post(ctx, "create provider", "/proveedores", req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
