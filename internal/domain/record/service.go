package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const defaultBatchSize = 500

// Service defines the business logic for record operations
type Service struct {
	repo      Repository
	log       *slog.Logger
	clock     func() time.Time
	newID     func() string
	batchSize int
}

type Servicer interface {
	Create(ctx context.Context, req CreateRequest) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type Option func(*Service)

// WithClock overrides the time source used for creation and read checks.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator overrides how record IDs are assigned.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithBatchSize sets how many expired IDs are fetched per round trip.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewService creates a new record service
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		log:       log.With("component", "record_service"),
		clock:     time.Now,
		newID:     uuid.NewString,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and stores a new record, assigning its ID and creation time
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidData)
	}
	if err := req.ExpireIn.Validate(); err != nil {
		return nil, err
	}
	typ := req.recordType()
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	createdAt := s.clock().UTC().Truncate(time.Millisecond)
	rec := &Record{
		ID:        s.newID(),
		Content:   req.Content,
		Type:      typ,
		MimeType:  req.MimeType,
		ExpireIn:  req.ExpireIn,
		CreatedAt: createdAt,
		ExpiresAt: req.ExpireIn.ExpiresAt(createdAt),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create record", "type", typ, "error", err)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created", "record_id", rec.ID, "type", typ, "expire_in", rec.ExpireIn.String())
	return rec, nil
}

// Get returns a live record and consumes it: a secret can be read only once.
// Records past their expiration are reported as not found even before the
// purge has removed them.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	// stores compare the canonical lowercase form
	id = parsed.String()

	rec, err := s.repo.Take(ctx, id, s.clock().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	s.log.Info("record consumed", "record_id", id)
	return rec, nil
}

// DeleteExpired removes every record whose lifetime has elapsed as of now.
// A failure on one record does not stop the sweep; failed IDs are reported
// in a *PurgeError next to the number of records that were deleted.
func (s *Service) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	var (
		deleted int
		afterID string
		failed  = make(map[string]error)
	)

	for {
		ids, err := s.repo.ListExpired(ctx, now, afterID, s.batchSize)
		if err != nil {
			s.log.Error("failed to list expired records", "error", err)
			return deleted, errors.Join(fmt.Errorf("list expired records: %w", err), purgeError(failed))
		}

		for _, id := range ids {
			ok, err := s.repo.DeleteExpiredByID(ctx, id, now)
			if err != nil {
				s.log.Warn("failed to delete expired record", "record_id", id, "error", err)
				failed[id] = err
				continue
			}
			if ok {
				deleted++
			}
		}

		if len(ids) < s.batchSize {
			break
		}
		afterID = ids[len(ids)-1]
	}

	if err := purgeError(failed); err != nil {
		return deleted, err
	}
	return deleted, nil
}

func purgeError(failed map[string]error) error {
	if len(failed) == 0 {
		return nil
	}
	return &PurgeError{Failed: failed}
}
