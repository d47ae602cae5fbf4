package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/altiplano/backoffice/internal/gateway"
	"github.com/altiplano/backoffice/internal/platform/httpx"
	"github.com/altiplano/backoffice/internal/shared"
	"github.com/altiplano/backoffice/internal/view"
)

// Handler wires HTTP endpoints for the product and provider views.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a catalog handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountProductRoutes registers the product routes.
func (h *Handler) MountProductRoutes(r chi.Router) {
	r.Get("/", h.showProducts)
	r.Get("/tabla", h.productsTable)
	r.Get("/opciones", h.productOptions)
	r.Post("/", h.createProduct)
}

// MountProviderRoutes registers the provider routes.
func (h *Handler) MountProviderRoutes(r chi.Router) {
	r.Get("/", h.showProviders)
	r.Get("/tabla", h.providersTable)
	r.Get("/opciones", h.providerOptions)
	r.Post("/", h.createProvider)
}

type productsPageData struct {
	Rows            []ProductRow
	ProviderOptions []ProviderOption
	LoadError       string
}

func (h *Handler) showProducts(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	data := productsPageData{}
	rows, err := h.service.Products(r.Context())
	if err != nil {
		h.logger.Error("load products", slog.Any("error", err))
		data.LoadError = "Error al cargar productos"
	} else {
		data.Rows = rows
	}
	if options, err := h.service.ProviderOptions(r.Context()); err == nil {
		data.ProviderOptions = options
	} else {
		h.logger.Error("load provider options", slog.Any("error", err))
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{Title: "Productos", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, "pages/products.html", viewData); err != nil {
		h.logger.Error("render products", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) productsTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Products(r.Context())
	if err != nil {
		h.logger.Error("load products table", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/products_table.html", rows); err != nil {
		h.logger.Error("render products table", slog.Any("error", err))
	}
}

func (h *Handler) productOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ProductOptions(r.Context())
	if err != nil {
		h.logger.Error("load product options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/product_options.html", options); err != nil {
		h.logger.Error("render product options", slog.Any("error", err))
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	price, _ := strconv.ParseFloat(r.PostFormValue("precio"), 64)
	stock, _ := strconv.Atoi(r.PostFormValue("existencia"))
	providerID, _ := strconv.ParseInt(r.PostFormValue("id_proveedor"), 10, 64)
	req := gateway.CreateProductRequest{
		Name:        r.PostFormValue("nombre"),
		Description: r.PostFormValue("descripcion"),
		Price:       price,
		Stock:       stock,
		ProviderID:  providerID,
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.CreateProduct(r.Context(), req); err != nil {
		h.logger.Error("create product", slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al crear producto", err)
	} else {
		shared.FlashSuccessMessage(sess, "Producto agregado correctamente")
	}
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

type providersPageData struct {
	Rows      []gateway.Provider
	LoadError string
}

func (h *Handler) showProviders(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	data := providersPageData{}
	rows, err := h.service.Providers(r.Context())
	if err != nil {
		h.logger.Error("load providers", slog.Any("error", err))
		data.LoadError = "Error al cargar proveedores"
	} else {
		data.Rows = rows
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{Title: "Proveedores", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, "pages/providers.html", viewData); err != nil {
		h.logger.Error("render providers", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) providersTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Providers(r.Context())
	if err != nil {
		h.logger.Error("load providers table", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/providers_table.html", rows); err != nil {
		h.logger.Error("render providers table", slog.Any("error", err))
	}
}

func (h *Handler) providerOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ProviderOptions(r.Context())
	if err != nil {
		h.logger.Error("load provider options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.templates.RenderPartial(w, "partials/provider_options.html", options); err != nil {
		h.logger.Error("render provider options", slog.Any("error", err))
	}
}

func (h *Handler) createProvider(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	req := gateway.CreateProviderRequest{
		Name:    r.PostFormValue("nombre"),
		Address: r.PostFormValue("direccion"),
		Phone:   r.PostFormValue("telefono"),
		Email:   r.PostFormValue("email"),
	}

	sess := shared.SessionFromContext(r.Context())
	if err := h.service.CreateProvider(r.Context(), req); err != nil {
		h.logger.Error("create provider", slog.Any("error", err))
		shared.FlashBackendError(sess, "Error al crear proveedor", err)
	} else {
		shared.FlashSuccessMessage(sess, "Proveedor agregado correctamente")
	}
	http.Redirect(w, r, "/proveedores", http.StatusSeeOther)
}
