package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	products, orders, sales, supply int
}

func (r *countingRefresher) RefreshProducts()       { r.products++ }
func (r *countingRefresher) RefreshOrders()         { r.orders++ }
func (r *countingRefresher) RefreshSales()          { r.sales++ }
func (r *countingRefresher) RefreshSupplierOrders() { r.supply++ }

func newTestManager(t *testing.T) (*Manager, *countingRefresher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	refresher := &countingRefresher{}
	manager := NewManager(logger, "ws://localhost:4000/ws", "http://localhost", NewPanelStore(), refresher)
	manager.now = func() time.Time { return time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC) }
	return manager, refresher
}

func TestLowStockEventPrependsSingleCard(t *testing.T) {
	manager, refresher := newTestManager(t)

	manager.HandleEvent(feedStock, Event{Type: EventLowStock, EntityID: 3, StockLevel: 4})
	manager.HandleEvent(feedStock, Event{Type: EventLowStock, EntityID: 17, StockLevel: 2})

	cards := manager.Panels().Snapshot(PanelStock)
	require.Len(t, cards, 2)
	require.Contains(t, cards[0].Title, "17")
	require.Equal(t, "Stock actual: 2 unidades", cards[0].Detail)
	require.Contains(t, cards[1].Title, "3", "earlier cards stay in place")
	require.Equal(t, "09/03/2024 12:30:00", cards[0].Timestamp)

	require.Zero(t, refresher.products)
	require.Zero(t, refresher.orders)
	require.Zero(t, refresher.sales)
	require.Zero(t, refresher.supply)
}

func TestNewOrderEventRefreshesExactlyOneList(t *testing.T) {
	cases := []struct {
		name string
		hint string
		want func(*countingRefresher) int
	}{
		{"customer order", "http://localhost:4000/api/pedidos/4/productos", func(r *countingRefresher) int { return r.orders }},
		{"sale", "http://localhost:4000/api/ventas/9/productos", func(r *countingRefresher) int { return r.sales }},
		{"supplier order", "http://localhost:4000/api/ordenes/2/productos", func(r *countingRefresher) int { return r.supply }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			manager, refresher := newTestManager(t)
			manager.HandleEvent(feedOrders, Event{Type: EventNewOrder, EntityID: 4, Amount: 120.5, ProductsURL: tc.hint})

			require.Equal(t, 1, tc.want(refresher))
			total := refresher.orders + refresher.sales + refresher.supply + refresher.products
			require.Equal(t, 1, total, "exactly one list refreshed")

			cards := manager.Panels().Snapshot(PanelOrders)
			require.Len(t, cards, 1)
			require.Contains(t, cards[0].Title, "4")
		})
	}
}

func TestNewOrderEventWithoutHintRefreshesNothing(t *testing.T) {
	manager, refresher := newTestManager(t)
	manager.HandleEvent(feedOrders, Event{Type: EventNewOrder, EntityID: 8, ProductsURL: "http://localhost:4000/api/otros/8"})

	require.Len(t, manager.Panels().Snapshot(PanelOrders), 1, "card still recorded")
	require.Zero(t, refresher.orders+refresher.sales+refresher.supply+refresher.products)
}

func TestCancellationEventRefreshesAllLists(t *testing.T) {
	manager, refresher := newTestManager(t)
	manager.HandleEvent(feedCancellations, Event{Type: EventCancelOrder, EntityID: 6, Amount: 80, Provider: "Acme"})

	cards := manager.Panels().Snapshot(PanelCancellations)
	require.Len(t, cards, 1)
	require.Contains(t, cards[0].Title, "6")
	require.Equal(t, "Proveedor: Acme", cards[0].Extra)

	require.Equal(t, 1, refresher.orders)
	require.Equal(t, 1, refresher.sales)
	require.Equal(t, 1, refresher.supply)
	require.Zero(t, refresher.products)
}

func TestCancellationCardWithoutProviderOmitsExtra(t *testing.T) {
	manager, _ := newTestManager(t)
	manager.HandleEvent(feedCancellations, Event{Type: EventCancelOrder, EntityID: 6, Amount: 80})

	cards := manager.Panels().Snapshot(PanelCancellations)
	require.Len(t, cards, 1)
	require.Empty(t, cards[0].Extra)
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	manager, refresher := newTestManager(t)
	manager.HandleEvent(feedStock, Event{Type: "restock_complete", EntityID: 5})

	require.Empty(t, manager.Panels().Snapshot(PanelStock))
	require.Empty(t, manager.Panels().Snapshot(PanelOrders))
	require.Empty(t, manager.Panels().Snapshot(PanelCancellations))
	require.Zero(t, refresher.orders+refresher.sales+refresher.supply+refresher.products)
}

func TestEventOnWrongFeedIsDropped(t *testing.T) {
	manager, refresher := newTestManager(t)

	manager.HandleEvent(feedStock, Event{Type: EventCancelOrder, EntityID: 6, Amount: 80})
	manager.HandleEvent(feedOrders, Event{Type: EventLowStock, EntityID: 3, StockLevel: 1})

	require.Empty(t, manager.Panels().Snapshot(PanelStock))
	require.Empty(t, manager.Panels().Snapshot(PanelOrders))
	require.Empty(t, manager.Panels().Snapshot(PanelCancellations))
	require.Zero(t, refresher.orders+refresher.sales+refresher.supply+refresher.products)
}

type collectingSink struct {
	cards []Card
}

func (s *collectingSink) PublishCard(card Card) { s.cards = append(s.cards, card) }

type recordingCounter struct {
	seen map[string]int
}

func (c *recordingCounter) CountFeedEvent(feed, eventType string) {
	if c.seen == nil {
		c.seen = map[string]int{}
	}
	c.seen[feed+"/"+eventType]++
}

func TestCardsAndCountsReachCollaborators(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := &collectingSink{}
	counter := &recordingCounter{}
	manager := NewManager(logger, "ws://localhost:4000/ws", "http://localhost", NewPanelStore(), &countingRefresher{},
		WithCardSink(sink), WithEventCounter(counter))

	manager.HandleEvent(feedStock, Event{Type: EventLowStock, EntityID: 1, StockLevel: 2})
	manager.HandleEvent(feedStock, Event{Type: "bogus"})

	require.Len(t, sink.cards, 1)
	require.Equal(t, PanelStock, sink.cards[0].Panel)
	require.Equal(t, 1, counter.seen["stock/low_stock"])
	require.Equal(t, 1, counter.seen["stock/bogus"], "unknown types are still counted")
}

func TestListForHintMatchesPathSegments(t *testing.T) {
	list, ok := listForHint("http://localhost:4000/api/pedidos/1/productos")
	require.True(t, ok)
	require.Equal(t, ListOrders, list)

	_, ok = listForHint("http://localhost:4000/api/pedidos")
	require.False(t, ok, "bare collection path is not a detail hint")
}
