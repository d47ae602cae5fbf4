// Package catalog renders and maintains the product and provider views.
package catalog

import "github.com/altiplano/backoffice/internal/gateway"

// LowStockThreshold flags products whose stock has fallen to alert levels.
// Display only, nothing is enforced client-side.
const LowStockThreshold = 5

// ProductRow is one rendered product table row.
type ProductRow struct {
	gateway.Product
	LowStock bool
}

// ProductOption is one entry of a product selector. The label mirrors the
// console's "name - $price (stock unidades)" format; price and stock ride
// along as data attributes for the form script.
type ProductOption struct {
	ID    int64
	Label string
	Price float64
	Stock int
}

// ProviderOption is one entry of a provider selector.
type ProviderOption struct {
	ID   int64
	Name string
}
