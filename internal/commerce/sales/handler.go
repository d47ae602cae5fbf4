package sales

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

// ProductsRefresher nudges connected consoles to reload the product list.
type ProductsRefresher interface {
	RefreshProducts()
}

// Handler wires HTTP endpoints for the sale views.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	options   OptionSource
	templates *view.Engine
	csrf      *shared.CSRFManager
	refresher ProductsRefresher
}

// NewHandler constructs a sales handler. refresher may be nil.
func NewHandler(logger *slog.Logger, service *Service, options OptionSource, templates *view.Engine, csrf *shared.CSRFManager, refresher ProductsRefresher) *Handler {
	return &Handler{logger: logger, service: service, options: options, templates: templates, csrf: csrf, refresher: refresher}
}

// MountRoutes registers the sale routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showSales)
	r.Get("/tabla", h.salesTable)
	r.Post("/", h.createSale)
	r.Get("/{id}/detalles", h.saleDetails)
	r.Post("/{id}/cancelar", h.cancelSale)
}

type pageData struct {
	Rows           []Row
	ProductOptions []catalog.ProductOption
	LoadError      string
}

func (h *Handler) showSales(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	data := pageData{}
	rows, err := h.service.Rows(r.Context())
	if err != nil {
		h.logger.Error("load sales", slog.Any("error", err))
		data.LoadError = "Error al cargar ventas"
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
	viewData := view.TemplateData{Title: "Ventas", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, "pages/sales.html", viewData); err != nil {
		h.logger.Error("render sales", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) salesTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Rows(r.Context())
	if err != nil {
		h.logger.Error("load sales table", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/sales_table.html", rows); err != nil {
		h.logger.Error("render sales table", slog.Any("error", err))
	}
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Create(r.Context(), r.PostForm); err != nil {
		h.logger.Error("create sale", slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al crear venta", err)
	} else {
		shared.FlashSuccessMessage(sess, "Venta creada correctamente")
		if h.refresher != nil {
			h.refresher.RefreshProducts()
		}
	}
	http.Redirect(w, r, "/ventas", http.StatusSeeOther)
}

func (h *Handler) saleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	detail, err := h.service.Details(r.Context(), id)
	if err != nil {
		h.logger.Error("load sale details", slog.Int64("sale_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/detail_table.html", detail); err != nil {
		h.logger.Error("render sale details", slog.Any("error", err))
	}
}

func (h *Handler) cancelSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.logger.Error("cancel sale", slog.Int64("sale_id", id), slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al cancelar venta", err)
	} else {
		shared.FlashSuccessMessage(sess, "Venta cancelada correctamente")
	}
	http.Redirect(w, r, "/ventas", http.StatusSeeOther)
}
