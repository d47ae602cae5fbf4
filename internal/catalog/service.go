package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/altiplano/backoffice/internal/gateway"
	"github.com/altiplano/backoffice/internal/view"
)

// API is the slice of the backend gateway the catalog needs.
type API interface {
	ListProducts(ctx context.Context) ([]gateway.Product, error)
	CreateProduct(ctx context.Context, req gateway.CreateProductRequest) (int64, error)
	ListProviders(ctx context.Context) ([]gateway.Provider, error)
	CreateProvider(ctx context.Context, req gateway.CreateProviderRequest) (int64, error)
}

// Service builds product and provider projections from the latest fetch.
// Nothing is cached: every render is a disposable copy of backend state.
type Service struct {
	api      API
	validate *validator.Validate
}

// NewService constructs a catalog service.
func NewService(api API) *Service {
	return &Service{api: api, validate: validator.New()}
}

// Products fetches the product collection and flags low-stock rows.
// Server order is preserved verbatim.
func (s *Service) Products(ctx context.Context) ([]ProductRow, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{Product: p, LowStock: p.Stock <= LowStockThreshold})
	}
	return rows, nil
}

// ProductOptions builds selector options from the latest product fetch.
func (s *Service) ProductOptions(ctx context.Context) ([]ProductOption, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load product options: %w", err)
	}
	return BuildProductOptions(products), nil
}

// BuildProductOptions converts fetched products into selector options.
func BuildProductOptions(products []gateway.Product) []ProductOption {
	options := make([]ProductOption, 0, len(products))
	for _, p := range products {
		options = append(options, ProductOption{
			ID:    p.ID,
			Label: fmt.Sprintf("%s - $%s (%d unidades)", p.Name, view.Money(p.Price), p.Stock),
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	return options
}

// Providers fetches the provider collection in server order.
func (s *Service) Providers(ctx context.Context) ([]gateway.Provider, error) {
	providers, err := s.api.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}
	return providers, nil
}

// ProviderOptions builds selector options from the latest provider fetch.
func (s *Service) ProviderOptions(ctx context.Context) ([]ProviderOption, error) {
	providers, err := s.api.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load provider options: %w", err)
	}
	options := make([]ProviderOption, 0, len(providers))
	for _, p := range providers {
		options = append(options, ProviderOption{ID: p.ID, Name: p.Name})
	}
	return options, nil
}

// CreateProduct validates and posts a new product.
func (s *Service) CreateProduct(ctx context.Context, req gateway.CreateProductRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate product: %w", err)
	}
	if _, err := s.api.CreateProduct(ctx, req); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// CreateProvider validates and posts a new provider.
func (s *Service) CreateProvider(ctx context.Context, req gateway.CreateProviderRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate provider: %w", err)
	}
	if _, err := s.api.CreateProvider(ctx, req); err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}
