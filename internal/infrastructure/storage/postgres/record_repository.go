package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"otsshare/internal/domain/record"
)

const recordColumns = `id::text, content, type, mime_type, expire_value, expire_unit, created_at, expires_at`

type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	const query = `
		INSERT INTO records (id, content, type, mime_type, expire_value, expire_unit, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Content, string(rec.Type), rec.MimeType,
		rec.ExpireIn.Value, string(rec.ExpireIn.Unit), rec.CreatedAt, rec.ExpiresAt,
	)
	if err != nil {
		r.log.Error("failed to create record", "id", rec.ID, "error", err)
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Get(ctx context.Context, id string, now time.Time) (*record.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1 AND expires_at > $2`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Take deletes and returns a live record in one statement, so two readers
// racing for the same id cannot both receive it.
func (r *RecordRepository) Take(ctx context.Context, id string, now time.Time) (*record.Record, error) {
	query := `DELETE FROM records WHERE id = $1 AND expires_at > $2 RETURNING ` + recordColumns

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to take record", "id", id, "error", err)
		return nil, fmt.Errorf("take record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) ListExpired(ctx context.Context, now time.Time, afterID string, limit int) ([]string, error) {
	const query = `
		SELECT id::text FROM records
		WHERE expires_at <= $1 AND id > $2
		ORDER BY id
		LIMIT $3`

	if afterID == "" {
		afterID = uuid.Nil.String()
	}

	rows, err := r.pool.Query(ctx, query, now, afterID, limit)
	if err != nil {
		r.log.Error("failed to list expired records", "error", err)
		return nil, fmt.Errorf("list expired records: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan expired ids: %w", err)
	}
	return ids, nil
}

func (r *RecordRepository) DeleteExpiredByID(ctx context.Context, id string, now time.Time) (bool, error) {
	const query = `DELETE FROM records WHERE id = $1 AND expires_at <= $2`

	tag, err := r.pool.Exec(ctx, query, id, now)
	if err != nil {
		r.log.Error("failed to delete expired record", "id", id, "error", err)
		return false, fmt.Errorf("delete expired record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanRecord(row pgx.Row) (*record.Record, error) {
	var (
		rec        record.Record
		recType    string
		expireUnit string
	)

	err := row.Scan(
		&rec.ID, &rec.Content, &recType, &rec.MimeType,
		&rec.ExpireIn.Value, &expireUnit, &rec.CreatedAt, &rec.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Type = record.RecType(recType)
	rec.ExpireIn.Unit = record.ExpirationUnit(expireUnit)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.ExpiresAt = rec.ExpiresAt.UTC()

	return &rec, nil
}
