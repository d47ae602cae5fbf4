package notify

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altiplano/backoffice/internal/shared"
	"github.com/altiplano/backoffice/internal/view"
)

// Handler serves the dashboard page and the live event stream browsers
// subscribe to.
type Handler struct {
	logger    *slog.Logger
	manager   *Manager
	hub       *Hub
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, manager *Manager, hub *Hub, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, manager: manager, hub: hub, templates: templates, csrf: csrf}
}

// MountRoutes registers the dashboard at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
}

// MountStream registers the server-sent event stream.
func (h *Handler) MountStream(r chi.Router) {
	r.Get("/stream", h.stream)
}

type dashboardPageData struct {
	StockCards        []Card
	OrderCards        []Card
	CancellationCards []Card
	FeedStates        map[string]string
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	states := make(map[string]string)
	for name, state := range h.manager.FeedStates() {
		states[name] = state.String()
	}
	data := dashboardPageData{
		StockCards:        h.manager.Panels().Snapshot(PanelStock),
		OrderCards:        h.manager.Panels().Snapshot(PanelOrders),
		CancellationCards: h.manager.Panels().Snapshot(PanelCancellations),
		FeedStates:        states,
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{Title: "Panel", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, messages := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)
	h.logger.Debug("stream client connected", "client_id", id)

	for {
		select {
		case <-r.Context().Done():
			return
		case payload, ok := <-messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
