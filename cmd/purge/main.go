// Command purge runs a single sweep of expired records and exits. It is meant
// for cron-style scheduling next to a server running with PURGE_INTERVAL=0.
// A failed sweep is logged and still exits 0; the next run retries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"otsshare/internal/app/server/config"
	"otsshare/internal/domain/purge"
	"otsshare/internal/domain/record"
	"otsshare/internal/infrastructure/storage"
	"otsshare/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, conf.DB, log)
	if err != nil {
		log.Error("cannot open record store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	records := record.NewService(store, log, record.WithBatchSize(conf.Purge.BatchSize))
	res := purge.New(records, log).Purge(ctx)

	log.Info("purge run finished",
		slog.Int("removed", res.Removed),
		slog.Bool("failed", res.Err != nil),
		slog.Duration("duration", res.Duration),
	)
}
