package orders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/altiplano/backoffice/internal/catalog"
	"github.com/altiplano/backoffice/internal/platform/httpx"
	"github.com/altiplano/backoffice/internal/shared"
	"github.com/altiplano/backoffice/internal/view"
)

// OptionSource provides the product selector options for the creation form.
type OptionSource interface {
	ProductOptions(ctx context.Context) ([]catalog.ProductOption, error)
}

// ProductsRefresher nudges connected consoles to reload the product list
// after an action that changed stock.
type ProductsRefresher interface {
	RefreshProducts()
}

// Handler wires HTTP endpoints for the customer-order views.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	options   OptionSource
	templates *view.Engine
	csrf      *shared.CSRFManager
	refresher ProductsRefresher
}

// NewHandler constructs an order handler. refresher may be nil.
func NewHandler(logger *slog.Logger, service *Service, options OptionSource, templates *view.Engine, csrf *shared.CSRFManager, refresher ProductsRefresher) *Handler {
	return &Handler{logger: logger, service: service, options: options, templates: templates, csrf: csrf, refresher: refresher}
}

// MountRoutes registers the customer-order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showOrders)
	r.Get("/tabla", h.ordersTable)
	r.Post("/", h.createOrder)
	r.Get("/{id}/detalles", h.orderDetails)
	r.Post("/{id}/cancelar", h.cancelOrder)
}

type pageData struct {
	Rows           []Row
	ProductOptions []catalog.ProductOption
	LoadError      string
}

func (h *Handler) showOrders(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	data := pageData{}
	rows, err := h.service.Rows(r.Context())
	if err != nil {
		h.logger.Error("load orders", slog.Any("error", err))
		data.LoadError = "Error al cargar pedidos"
	} else {
		data.Rows = rows
	}
	if options, err := h.options.ProductOptions(r.Context()); err == nil {
		data.ProductOptions = options
	} else {
		h.logger.Error("load product options", slog.Any("error", err))
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{Title: "Pedidos", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, "pages/orders.html", viewData); err != nil {
		h.logger.Error("render orders", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) ordersTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Rows(r.Context())
	if err != nil {
		h.logger.Error("load orders table", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/orders_table.html", rows); err != nil {
		h.logger.Error("render orders table", slog.Any("error", err))
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Create(r.Context(), r.PostForm); err != nil {
		h.logger.Error("create order", slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al crear pedido", err)
	} else {
		shared.FlashSuccessMessage(sess, "Pedido creado correctamente")
		// the backend reduced stock, so product views are stale now
		if h.refresher != nil {
			h.refresher.RefreshProducts()
		}
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}

func (h *Handler) orderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	detail, err := h.service.Details(r.Context(), id)
	if err != nil {
		h.logger.Error("load order details", slog.Int64("order_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/detail_table.html", detail); err != nil {
		h.logger.Error("render order details", slog.Any("error", err))
	}
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.logger.Error("cancel order", slog.Int64("order_id", id), slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al cancelar pedido", err)
	} else {
		shared.FlashSuccessMessage(sess, "Pedido cancelado correctamente")
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}
