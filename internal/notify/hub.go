package notify

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Message is one server-sent push to a browser: either a fresh card or a
// directive to reload one of the list views.
type Message struct {
	Kind string   `json:"kind"`
	Card *Card    `json:"card,omitempty"`
	List ListKind `json:"list,omitempty"`
}

const clientBuffer = 16

// Hub fans messages out to every connected browser. It implements both
// Refresher and CardSink, so feed events and form submissions share one
// delivery path. A client that cannot keep up is dropped rather than
// allowed to stall the rest.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[string]chan []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: map[string]chan []byte{},
	}
}

// Subscribe registers a new client and returns its id and receive channel.
func (h *Hub) Subscribe() (string, <-chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, clientBuffer)
	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a client registered by Subscribe.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
	}
	h.mu.Unlock()
}

// ClientCount reports the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishCard delivers a card to every connected browser.
func (h *Hub) PublishCard(card Card) {
	h.broadcast(Message{Kind: "card", Card: &card})
}

func (h *Hub) RefreshProducts()       { h.reload(ListProducts) }
func (h *Hub) RefreshOrders()         { h.reload(ListOrders) }
func (h *Hub) RefreshSales()          { h.reload(ListSales) }
func (h *Hub) RefreshSupplierOrders() { h.reload(ListSupplierOrders) }

func (h *Hub) reload(list ListKind) {
	h.broadcast(Message{Kind: "reload", List: list})
}

func (h *Hub) broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encoding push message", "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		select {
		case ch <- payload:
		default:
			delete(h.clients, id)
			close(ch)
			h.logger.Warn("dropping slow client", "client_id", id)
		}
	}
}
