package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"otsshare/internal/app/server/api"
	"otsshare/internal/app/server/config"
	"otsshare/internal/domain/purge"
	"otsshare/internal/domain/record"
	"otsshare/internal/infrastructure/storage"
	"otsshare/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel)

	if err := run(conf, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, conf.DB, log)
	if err != nil {
		return err
	}
	defer store.Close()

	records := record.NewService(store, log, record.WithBatchSize(conf.Purge.BatchSize))

	if conf.Purge.Interval > 0 {
		scheduler := purge.NewScheduler(purge.New(records, log), conf.Purge.Interval, log)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	} else {
		log.Info("in-process purge disabled, expecting an external purge run")
	}

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           api.New(records, store, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("address", conf.Server.RunAddress), slog.String("env", conf.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
