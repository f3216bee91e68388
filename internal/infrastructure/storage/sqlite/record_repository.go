// Package sqlite is a single-file record store for development and single-node
// deployments. Timestamps are stored as unix milliseconds.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"otsshare/internal/domain/record"
)

const recordColumns = `id, content, type, mime_type, expire_value, expire_unit, created_at, expires_at`

type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*RecordRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer at a time; the conditional statements below rely on it
	db.SetMaxOpenConns(1)

	repo := &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
	}

	if err := repo.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return repo, nil
}

func (r *RecordRepository) initTables() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'text',
			mime_type TEXT,
			expire_value INTEGER NOT NULL,
			expire_unit TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_expires_at ON records(expires_at);
	`)
	return err
}

func (r *RecordRepository) Close() error {
	return r.db.Close()
}

func (r *RecordRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Content, string(rec.Type), rec.MimeType,
		rec.ExpireIn.Value, string(rec.ExpireIn.Unit),
		rec.CreatedAt.UnixMilli(), rec.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		r.log.Error("failed to create record", "id", rec.ID, "error", err)
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Get(ctx context.Context, id string, now time.Time) (*record.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ? AND expires_at > ?`,
		id, now.UnixMilli())

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) Take(ctx context.Context, id string, now time.Time) (*record.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM records WHERE id = ? AND expires_at > ? RETURNING `+recordColumns,
		id, now.UnixMilli())

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to take record", "id", id, "error", err)
		return nil, fmt.Errorf("take record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) ListExpired(ctx context.Context, now time.Time, afterID string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM records
		WHERE expires_at <= ? AND id > ?
		ORDER BY id
		LIMIT ?`,
		now.UnixMilli(), afterID, limit)
	if err != nil {
		r.log.Error("failed to list expired records", "error", err)
		return nil, fmt.Errorf("list expired records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *RecordRepository) DeleteExpiredByID(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE id = ? AND expires_at <= ?`,
		id, now.UnixMilli())
	if err != nil {
		r.log.Error("failed to delete expired record", "id", id, "error", err)
		return false, fmt.Errorf("delete expired record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

func scanRecord(row *sql.Row) (*record.Record, error) {
	var (
		rec                  record.Record
		recType, expireUnit  string
		mimeType             sql.NullString
		createdAt, expiresAt int64
	)

	err := row.Scan(
		&rec.ID, &rec.Content, &recType, &mimeType,
		&rec.ExpireIn.Value, &expireUnit, &createdAt, &expiresAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Type = record.RecType(recType)
	rec.ExpireIn.Unit = record.ExpirationUnit(expireUnit)
	if mimeType.Valid {
		rec.MimeType = &mimeType.String
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.ExpiresAt = time.UnixMilli(expiresAt).UTC()

	return &rec, nil
}
