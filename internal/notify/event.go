// Package notify owns the three push-feed connections to the backend's
// notification service and reconciles inbound events into notification
// panels and list refresh directives.
package notify

import "time"

// Event type discriminators, one expected kind per feed.
const (
	EventLowStock    = "low_stock"
	EventNewOrder    = "new_order"
	EventCancelOrder = "cancel_order"
)

// Event is one inbound push message. Fields are populated per type;
// unknown fields and unknown types never fail decoding.
type Event struct {
	Type        string    `json:"type"`
	EntityID    int64     `json:"entity_id"`
	StockLevel  int       `json:"stock_level"`
	Amount      float64   `json:"amount"`
	Provider    string    `json:"provider,omitempty"`
	ProductsURL string    `json:"products_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Panel identifiers, one DOM region per feed.
const (
	PanelStock         = "stock"
	PanelOrders        = "orders"
	PanelCancellations = "cancellations"
)

// Card is one rendered notification entry. Cards are only ever prepended;
// nothing removes or deduplicates them.
type Card struct {
	Panel     string `json:"panel"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Extra     string `json:"extra,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ListKind names one of the refreshable list views.
type ListKind string

// Refreshable lists.
const (
	ListOrders         ListKind = "pedidos"
	ListSales          ListKind = "ventas"
	ListSupplierOrders ListKind = "ordenes"
	ListProducts       ListKind = "productos"
)

// Refresher receives list refresh directives derived from events.
type Refresher interface {
	RefreshProducts()
	RefreshOrders()
	RefreshSales()
	RefreshSupplierOrders()
}
