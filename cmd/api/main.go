package main

import (
	"database/sql"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Cafeteria/internal/api"
	"Cafeteria/internal/cart"
	"Cafeteria/internal/catalog"
	"Cafeteria/pkg/kit"
)

func main() {
	service := "cafeteria"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "3000")
	metricsToken := getenv("METRICS_TOKEN", "")

	store, closeStore, err := buildStore(getenv("DATABASE_URL", ""))
	if err != nil {
		log.Fatal("catalog store", zap.Error(err))
	}
	defer closeStore()

	catalogSrv := &catalog.Server{Store: store, Log: log}
	cartSrv := &cart.Server{Carts: cart.NewRegistry(store), Log: log}

	h := api.NewHandler(catalogSrv, cartSrv, api.HTTPDeps{
		Log:      log,
		Service:  service,
		Registry: prometheus.NewRegistry(),

		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,

		RateLimit:         atoiOr(getenv("RATE_LIMIT", "0"), 0),
		RateWindowSeconds: atoiOr(getenv("RATE_WINDOW_SECONDS", "60"), 60),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// buildStore picks the catalog backend: Postgres when DATABASE_URL is set,
// otherwise the built-in seed.
func buildStore(dsn string) (catalog.Store, func(), error) {
	if dsn == "" {
		return catalog.NewMemStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPostgresStore(db), func() { _ = db.Close() }, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
