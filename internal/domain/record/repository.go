package record

import (
	"context"
	"time"
)

// Repository is the persistence capability behind the record service.
// Implementations own their concurrency control.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	// Get returns a record that is not expired at now.
	Get(ctx context.Context, id string, now time.Time) (*Record, error)
	// Take returns a record that is not expired at now and deletes it in the same step.
	Take(ctx context.Context, id string, now time.Time) (*Record, error)

	// ListExpired returns up to limit IDs of records expired at now, ordered by ID
	// and strictly greater than afterID.
	ListExpired(ctx context.Context, now time.Time, afterID string, limit int) ([]string, error)
	// DeleteExpiredByID deletes the record only if it is still stored and expired at now.
	// It reports false when there was nothing to delete.
	DeleteExpiredByID(ctx context.Context, id string, now time.Time) (bool, error)
}
