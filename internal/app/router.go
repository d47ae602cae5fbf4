package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/altiplano/backoffice/internal/catalog"
	"github.com/altiplano/backoffice/internal/commerce/orders"
	"github.com/altiplano/backoffice/internal/commerce/sales"
	"github.com/altiplano/backoffice/internal/commerce/supply"
	"github.com/altiplano/backoffice/internal/notify"
	"github.com/altiplano/backoffice/internal/observability"
	"github.com/altiplano/backoffice/internal/platform/httpx"
	"github.com/altiplano/backoffice/internal/shared"
	"github.com/altiplano/backoffice/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	CatalogHandler *catalog.Handler
	OrdersHandler  *orders.Handler
	SalesHandler   *sales.Handler
	SupplyHandler  *supply.Handler
	NotifyHandler  *notify.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router for the console.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	mwCfg := MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}
	for _, mw := range BaseMiddleware(mwCfg) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pages and fragments run under the full request-scoped chain.
	r.Group(func(r chi.Router) {
		for _, mw := range PageMiddleware(mwCfg) {
			r.Use(mw)
		}

		params.NotifyHandler.MountRoutes(r)
		r.Route("/productos", params.CatalogHandler.MountProductRoutes)
		r.Route("/proveedores", params.CatalogHandler.MountProviderRoutes)
		r.Route("/pedidos", params.OrdersHandler.MountRoutes)
		r.Route("/ventas", params.SalesHandler.MountRoutes)
		r.Route("/ordenes", params.SupplyHandler.MountRoutes)
	})

	// The event stream is long-lived: no deadline, no compression.
	r.Route("/notificaciones", params.NotifyHandler.MountStream)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
