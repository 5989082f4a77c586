package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Cafeteria/internal/cart"
	"Cafeteria/internal/catalog"
	"Cafeteria/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	RateLimit         int
	RateWindowSeconds int
}

// NewHandler assembles the full /api surface plus the operational endpoints.
func NewHandler(catalogSrv *catalog.Server, cartSrv *cart.Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(catalogSrv.Store, deps.Log))

	r.Route("/api", func(api chi.Router) {
		api.Get("/test", liveness)
		catalogSrv.Register(api)
		cartSrv.Register(api)
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(deps.Log))
	r.Use(kit.CORS())
	r.Use(kit.Logging(deps.Log))

	if deps.RateLimit > 0 {
		r.Use(kit.NewIPRateLimiter(deps.RateLimit, deps.RateWindowSeconds).Middleware)
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(store catalog.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

type livenessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, livenessResponse{
		Success:   true,
		Message:   "API da Cafeteria funcionando!",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
