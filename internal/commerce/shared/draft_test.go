package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalIsIdempotent(t *testing.T) {
	draft := &Draft{Lines: []DraftLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 10.5},
		{ProductID: 2, Quantity: 1, UnitPrice: 4},
	}}
	first := draft.Total()
	second := draft.Total()
	require.InDelta(t, 25.0, first, 0.0001)
	require.Equal(t, first, second)
}

func TestUnselectedAndNonPositiveRowsContributeZero(t *testing.T) {
	draft := &Draft{Lines: []DraftLine{
		{ProductID: 1, Quantity: 3, UnitPrice: 5},
		{ProductID: 0, Quantity: 3, UnitPrice: 5}, // no product selected
		{ProductID: 2, Quantity: 0, UnitPrice: 5}, // no quantity
		{ProductID: 3, Quantity: -1, UnitPrice: 5},
	}}
	require.InDelta(t, 15.0, draft.Total(), 0.0001)
}

func TestRemoveLineBlockedOnLastRow(t *testing.T) {
	draft := NewDraft()
	require.Len(t, draft.Lines, 1)
	require.ErrorIs(t, draft.RemoveLine(0), ErrLastLine)
	require.Len(t, draft.Lines, 1)
}

func TestRemoveLineReducesTotalByThatSubtotal(t *testing.T) {
	draft := &Draft{Lines: []DraftLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 10},
		{ProductID: 2, Quantity: 4, UnitPrice: 2.5},
	}}
	before := draft.Total()
	removed := draft.Lines[1].Subtotal()
	require.NoError(t, draft.RemoveLine(1))
	require.InDelta(t, before-removed, draft.Total(), 0.0001)
	require.Len(t, draft.Lines, 1)
}

func TestRemoveLineOutOfRange(t *testing.T) {
	draft := &Draft{Lines: []DraftLine{{}, {}}}
	require.Error(t, draft.RemoveLine(5))
	require.Error(t, draft.RemoveLine(-1))
}

func TestValidateRejectsInvalidDrafts(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
	}{
		{"empty", Draft{}},
		{"unselected product", Draft{Lines: []DraftLine{{ProductID: 0, Quantity: 1}}}},
		{"zero quantity", Draft{Lines: []DraftLine{{ProductID: 1, Quantity: 0}}}},
		{"negative quantity", Draft{Lines: []DraftLine{{ProductID: 1, Quantity: -2}}}},
		{"negative price", Draft{Lines: []DraftLine{{ProductID: 1, Quantity: 1, UnitPrice: -1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.draft.Validate())
		})
	}

	valid := Draft{Lines: []DraftLine{{ProductID: 1, Quantity: 1, UnitPrice: 0}}}
	require.NoError(t, valid.Validate())
}

func TestParseFormReadsParallelArrays(t *testing.T) {
	values := url.Values{
		"producto_id":     {"3", "7"},
		"cantidad":        {"2", "5"},
		"precio_unitario": {"10.50", "1.25"},
	}

	withPrice := ParseForm(values, true)
	require.Len(t, withPrice.Lines, 2)
	require.Equal(t, int64(3), withPrice.Lines[0].ProductID)
	require.Equal(t, 2, withPrice.Lines[0].Quantity)
	require.InDelta(t, 10.5, withPrice.Lines[0].UnitPrice, 0.0001)

	withoutPrice := ParseForm(values, false)
	require.Zero(t, withoutPrice.Lines[0].UnitPrice)
}

func TestParseFormTreatsGarbageAsZero(t *testing.T) {
	values := url.Values{
		"producto_id": {"abc"},
		"cantidad":    {"x"},
	}
	draft := ParseForm(values, false)
	require.Len(t, draft.Lines, 1)
	require.Error(t, draft.Validate())
}

func TestLineItemsCarryComputedSubtotals(t *testing.T) {
	draft := &Draft{Lines: []DraftLine{{ProductID: 1, Quantity: 3, UnitPrice: 2}}}
	items := draft.LineItems()
	require.Len(t, items, 1)
	require.InDelta(t, 6.0, items[0].Subtotal, 0.0001)
}
