// Package shared holds the line-item draft logic used by the order, sale
// and supplier-order creation forms.
package shared

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/altiplano/backoffice/internal/gateway"
)

var (
	// ErrLastLine is returned when removal would leave the draft empty.
	// A creation form always keeps at least one line-item row.
	ErrLastLine = errors.New("cannot remove the last line item")
	// ErrNoLines is returned when a submitted draft carries no lines.
	ErrNoLines = errors.New("at least one line item is required")
)

// DraftLine is one editable line-item row. A line counts towards the total
// only once it has a selected product and a positive quantity.
type DraftLine struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// Subtotal returns quantity × unit price, or zero for unselected or
// non-positive rows.
func (l DraftLine) Subtotal() float64 {
	if l.ProductID <= 0 || l.Quantity <= 0 {
		return 0
	}
	return l.UnitPrice * float64(l.Quantity)
}

// Draft is the in-progress line-item set of a creation form.
type Draft struct {
	Lines []DraftLine
}

// NewDraft returns a draft with a single blank line, the state a freshly
// opened creation panel shows.
func NewDraft() *Draft {
	return &Draft{Lines: []DraftLine{{}}}
}

// AddLine appends a blank line-item row.
func (d *Draft) AddLine() {
	d.Lines = append(d.Lines, DraftLine{})
}

// RemoveLine deletes the row at index i. The last remaining row can never
// be removed.
func (d *Draft) RemoveLine(i int) error {
	if len(d.Lines) <= 1 {
		return ErrLastLine
	}
	if i < 0 || i >= len(d.Lines) {
		return fmt.Errorf("line index %d out of range", i)
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}

// Total sums the subtotals of all countable rows. Calling it repeatedly
// without changing the draft yields the same value.
func (d *Draft) Total() float64 {
	var total float64
	for _, line := range d.Lines {
		total += line.Subtotal()
	}
	return total
}

// Validate applies the submit-time rules: at least one line, and every line
// with a selected product, a positive integer quantity and a non-negative
// unit price.
func (d *Draft) Validate() error {
	if len(d.Lines) == 0 {
		return ErrNoLines
	}
	for i, line := range d.Lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("line %d: a product must be selected", i+1)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be a positive integer", i+1)
		}
		if line.UnitPrice < 0 {
			return fmt.Errorf("line %d: unit price cannot be negative", i+1)
		}
	}
	return nil
}

// LineItems converts the draft into backend line items with computed
// subtotals. Validate must have passed.
func (d *Draft) LineItems() []gateway.LineItem {
	items := make([]gateway.LineItem, 0, len(d.Lines))
	for _, line := range d.Lines {
		items = append(items, gateway.LineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return items
}

// ParseForm reads the parallel producto_id / cantidad (and, when withPrice
// is set, precio_unitario) arrays a creation form posts. Unparseable values
// read as zero and are caught by Validate.
func ParseForm(values url.Values, withPrice bool) *Draft {
	ids := values["producto_id"]
	quantities := values["cantidad"]
	prices := values["precio_unitario"]

	draft := &Draft{}
	for i := range ids {
		line := DraftLine{}
		line.ProductID, _ = strconv.ParseInt(ids[i], 10, 64)
		if i < len(quantities) {
			line.Quantity, _ = strconv.Atoi(quantities[i])
		}
		if withPrice && i < len(prices) {
			line.UnitPrice, _ = strconv.ParseFloat(prices[i], 64)
		}
		draft.Lines = append(draft.Lines, line)
	}
	return draft
}

// DetailTotal re-derives a detail view's total as the sum of its line
// subtotals instead of trusting the parent record.
func DetailTotal(lines []gateway.LineItem) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}
	return total
}
