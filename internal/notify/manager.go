package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/altiplano/backoffice/internal/view"
)

// Feed path segments and the fixed session identities each one registers
// with the notification service.
const (
	feedStock         = "stock"
	feedOrders        = "orders"
	feedCancellations = "cancellations"

	sessionStock         = "web-client-stock"
	sessionOrders        = "web-client-orders"
	sessionCancellations = "web-client-cancellations"
)

// Each feed carries exactly one kind of event. Anything else arriving on
// it is noise and must not reach the panels.
var feedKinds = map[string]string{
	feedStock:         EventLowStock,
	feedOrders:        EventNewOrder,
	feedCancellations: EventCancelOrder,
}

// CardSink receives rendered cards for live delivery to connected browsers.
type CardSink interface {
	PublishCard(Card)
}

// EventCounter records per-feed event counts.
type EventCounter interface {
	CountFeedEvent(feed, eventType string)
}

// Manager owns the three push feeds and turns their events into panel
// cards and list refresh directives.
type Manager struct {
	logger    *slog.Logger
	store     *PanelStore
	refresher Refresher
	sink      CardSink
	counter   EventCounter
	now       func() time.Time

	feeds []*Feed
}

// ManagerOption configures optional manager collaborators.
type ManagerOption func(*Manager)

// WithCardSink forwards every new card to sink after storing it.
func WithCardSink(sink CardSink) ManagerOption {
	return func(m *Manager) { m.sink = sink }
}

// WithEventCounter records event counts per feed and type.
func WithEventCounter(counter EventCounter) ManagerOption {
	return func(m *Manager) { m.counter = counter }
}

// NewManager wires the three feeds against the notification service at
// baseURL. Feeds stay unopened until Start.
func NewManager(logger *slog.Logger, baseURL, origin string, store *PanelStore, refresher Refresher, opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:    logger,
		store:     store,
		refresher: refresher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	subscriptions := []struct{ name, session string }{
		{feedStock, sessionStock},
		{feedOrders, sessionOrders},
		{feedCancellations, sessionCancellations},
	}
	for _, sub := range subscriptions {
		name := sub.name
		m.feeds = append(m.feeds, NewFeed(logger, baseURL, name, sub.session, origin, func(ev Event) {
			m.HandleEvent(name, ev)
		}))
	}
	return m
}

// Start dials every feed concurrently. A feed that fails stays closed;
// the remaining feeds keep running, so a partially reachable notification
// service still delivers what it can.
func (m *Manager) Start(ctx context.Context) {
	var g errgroup.Group
	for _, feed := range m.feeds {
		feed := feed
		g.Go(func() error {
			if err := feed.Open(ctx); err != nil {
				m.logger.Error("feed unavailable", "feed", feed.Name(), "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Stop closes every feed.
func (m *Manager) Stop() {
	for _, feed := range m.feeds {
		feed.Close()
	}
}

// Panels exposes the card store for page rendering.
func (m *Manager) Panels() *PanelStore { return m.store }

// FeedStates reports each feed's lifecycle position, keyed by feed name.
func (m *Manager) FeedStates() map[string]FeedState {
	states := make(map[string]FeedState, len(m.feeds))
	for _, feed := range m.feeds {
		states[feed.Name()] = feed.State()
	}
	return states
}

// HandleEvent reconciles one inbound event: a card for the feed's panel
// plus the refresh directives that event kind calls for. Events of an
// unexpected type are counted and dropped.
func (m *Manager) HandleEvent(feed string, ev Event) {
	if m.counter != nil {
		m.counter.CountFeedEvent(feed, ev.Type)
	}
	if ev.Type != feedKinds[feed] {
		m.logger.Warn("ignoring event of unexpected type", "feed", feed, "type", ev.Type)
		return
	}
	switch ev.Type {
	case EventLowStock:
		m.handleLowStock(ev)
	case EventNewOrder:
		m.handleNewOrder(ev)
	case EventCancelOrder:
		m.handleCancellation(ev)
	}
}

func (m *Manager) handleLowStock(ev Event) {
	m.publish(Card{
		Panel:     PanelStock,
		Title:     fmt.Sprintf("Producto #%d", ev.EntityID),
		Detail:    fmt.Sprintf("Stock actual: %d unidades", ev.StockLevel),
		Timestamp: m.stamp(ev),
	})
}

func (m *Manager) handleNewOrder(ev Event) {
	m.publish(Card{
		Panel:     PanelOrders,
		Title:     fmt.Sprintf("Pedido #%d", ev.EntityID),
		Detail:    fmt.Sprintf("Monto: $%s", view.Money(ev.Amount)),
		Timestamp: m.stamp(ev),
	})
	list, ok := listForHint(ev.ProductsURL)
	if !ok {
		m.logger.Warn("order event without a recognizable list hint", "hint", ev.ProductsURL)
		return
	}
	m.refresh(list)
}

func (m *Manager) handleCancellation(ev Event) {
	card := Card{
		Panel:     PanelCancellations,
		Title:     fmt.Sprintf("Cancelación #%d", ev.EntityID),
		Detail:    fmt.Sprintf("Monto: $%s", view.Money(ev.Amount)),
		Timestamp: m.stamp(ev),
	}
	if ev.Provider != "" {
		card.Extra = "Proveedor: " + ev.Provider
	}
	m.publish(card)
	m.refresh(ListOrders)
	m.refresh(ListSales)
	m.refresh(ListSupplierOrders)
}

func (m *Manager) publish(card Card) {
	m.store.Prepend(card)
	if m.sink != nil {
		m.sink.PublishCard(card)
	}
}

func (m *Manager) refresh(list ListKind) {
	switch list {
	case ListProducts:
		m.refresher.RefreshProducts()
	case ListOrders:
		m.refresher.RefreshOrders()
	case ListSales:
		m.refresher.RefreshSales()
	case ListSupplierOrders:
		m.refresher.RefreshSupplierOrders()
	}
}

func (m *Manager) stamp(ev Event) string {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = m.now()
	}
	return view.FormatDate(ts)
}

// listForHint maps a resource hint URL to the single list it refreshes.
// The mapping is by path substring, mirroring the shape of the backend's
// detail endpoints; exactly one list matches a well-formed hint.
func listForHint(hint string) (ListKind, bool) {
	switch {
	case strings.Contains(hint, "/pedidos/"):
		return ListOrders, true
	case strings.Contains(hint, "/ventas/"):
		return ListSales, true
	case strings.Contains(hint, "/ordenes/"):
		return ListSupplierOrders, true
	}
	return "", false
}
