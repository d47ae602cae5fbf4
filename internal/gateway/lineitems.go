package gateway

// LineItem is one product-quantity-price entry within an order, sale or
// supplier order. The same wire shape is used for reads and writes.
type LineItem struct {
	ProductID int64   `json:"id_producto" validate:"required,gt=0"`
	Quantity  int     `json:"cantidad" validate:"required,gt=0"`
	UnitPrice float64 `json:"precio_unitario" validate:"gte=0"`
	Subtotal  float64 `json:"subtotal"`
}
