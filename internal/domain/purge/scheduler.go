package purge

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Scheduler runs a sweep right away and then once per interval until
// stopped. A tick that arrives while a sweep is still running is dropped
// by the ticker, so sweeps from one scheduler never overlap.
type Scheduler struct {
	purger   *Purger
	interval time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(purger *Purger, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		purger:   purger,
		interval: interval,
		log:      log.With("component", "purge_scheduler"),
	}
}

// Start launches the background loop. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx, s.done)

	s.log.Info("purge scheduler started", slog.String("interval", s.interval.String()))
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	s.log.Info("purge scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.purger.Purge(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purger.Purge(ctx)
		}
	}
}
