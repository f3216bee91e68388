package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"otsshare/internal/app/server/config"
	"otsshare/internal/domain/record"
	"otsshare/internal/infrastructure/migration"
	"otsshare/internal/infrastructure/storage/postgres"
	"otsshare/internal/infrastructure/storage/sqlite"
)

// Store is a record repository together with its connection lifecycle.
type Store interface {
	record.Repository
	Ping(ctx context.Context) error
	Close() error
}

type postgresStore struct {
	*postgres.Storage
	*postgres.RecordRepository
}

// Open connects to the store selected by cfg.Driver. For postgres the
// pending migrations are applied first.
func Open(ctx context.Context, cfg config.DB, log *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		mg := migration.NewMigration(cfg.Migrations, cfg.DatabaseURI, migration.DefaultEngine, log)
		if err := mg.Up(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}

		s, err := postgres.New(ctx, cfg.DatabaseURI, log)
		if err != nil {
			return nil, err
		}
		return &postgresStore{
			Storage:          s,
			RecordRepository: postgres.NewRecordRepository(s.Pool(), log),
		}, nil

	case config.DriverSQLite:
		repo, err := sqlite.New(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite store", slog.String("path", cfg.SQLitePath))
		return repo, nil

	default:
		return nil, fmt.Errorf("%w: unknown DB_DRIVER %q", config.ErrInvalidConfig, cfg.Driver)
	}
}
