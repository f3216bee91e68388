// POST /api/records       store ciphertext, returns the record with its ID
// GET  /api/records/{id}  read a record once
// GET  /api/v1/health     liveness and store check
// GET  /metrics           Prometheus exposition

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	healthAPI "otsshare/internal/app/server/api/http/health"
	"otsshare/internal/app/server/api/http/middleware"
	"otsshare/internal/app/server/api/http/middleware/logger"
	"otsshare/internal/app/server/api/http/middleware/metrics"
	recordAPI "otsshare/internal/app/server/api/http/record"
	"otsshare/internal/domain/record"
)

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
}

// New returns a router with every operation registered through huma.
func New(records record.Servicer, store healthAPI.Pinger, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("One-time secret API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(records, store, log)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func handlers(records record.Servicer, store healthAPI.Pinger, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(metrics.Middleware())
	middlewares.Add(loggerMW.Middleware())
	recordHandler := recordAPI.NewHandler(records, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
	}
}
