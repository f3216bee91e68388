// Package purge removes records that have outlived their expiration policy.
//
// A sweep is a single coarse-grained call into the record service; there are
// no per-record timers. Sweeps are idempotent and may overlap, so any
// scheduler (the in-process Scheduler, cron running cmd/purge, a manual call)
// can drive them.
package purge

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// RecordService is the part of the record service a sweep needs.
type RecordService interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Result is the outcome of one sweep. Removed counts deletions that succeeded
// even when Err reports that some records could not be removed.
type Result struct {
	Removed  int
	Err      error
	Duration time.Duration
}

type Purger struct {
	records RecordService
	log     *slog.Logger
	clock   func() time.Time
	running atomic.Int32
}

type Option func(*Purger)

// WithClock sets the time source that decides what "expired" means.
func WithClock(clock func() time.Time) Option {
	return func(p *Purger) {
		p.clock = clock
	}
}

func New(records RecordService, log *slog.Logger, opts ...Option) *Purger {
	p := &Purger{
		records: records,
		log:     log.With("component", "purger"),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Running reports whether a sweep is in progress.
func (p *Purger) Running() bool {
	return p.running.Load() > 0
}

// Purge deletes every record expired as of now. Cancelling ctx does not
// interrupt a sweep that has already started. Errors are reported in the
// result and logged, never panicked.
func (p *Purger) Purge(ctx context.Context) Result {
	p.running.Add(1)
	defer p.running.Add(-1)

	start := time.Now()
	now := p.clock().UTC()

	p.log.Debug("purge started", slog.Time("now", now))

	removed, err := p.records.DeleteExpired(context.WithoutCancel(ctx), now)
	res := Result{
		Removed:  removed,
		Err:      err,
		Duration: time.Since(start),
	}

	runsTotal.Inc()
	removedTotal.Add(float64(removed))
	durationSeconds.Observe(res.Duration.Seconds())

	if err != nil {
		failuresTotal.Inc()
		p.log.Error("purge finished with errors",
			slog.Int("removed", removed),
			slog.String("error", err.Error()),
			slog.Duration("duration", res.Duration),
		)
		return res
	}

	p.log.Info("purge finished",
		slog.Int("removed", removed),
		slog.Duration("duration", res.Duration),
	)
	return res
}
