// Package scheduler drives the periodic tick loop: it pulls active jobs
// from the store, selects the due ones, dispatches them through the
// executor registry, and writes run bookkeeping back to the store.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/flemzord/croned/internal/cron"
	"github.com/flemzord/croned/internal/executor"
	"github.com/flemzord/croned/internal/job"
)

// Sentinel errors for scheduler lifecycle.
var (
	ErrAlreadyStarted = errors.New("scheduler: already started")
	ErrNotStarted     = errors.New("scheduler: not started")
)

// Resolver selects an executor variant for a job name.
// *executor.Registry satisfies this interface.
type Resolver interface {
	Resolve(jobName string) (executor.Executor, error)
}

// Config holds scheduler configuration.
type Config struct {
	TickInterval    time.Duration // default 1m
	DispatchTimeout time.Duration // per-job execution bound, default 1m
	MaxConcurrent   int           // concurrent dispatches per process, default 8
	Logger          *slog.Logger
	Now             func() time.Time // injectable for testing
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = time.Minute
	}
	if c.DispatchTimeout <= 0 {
		c.DispatchTimeout = time.Minute
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 8
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Scheduler owns the tick timer and its references to the job store and
// executor registry. Construct once at process start; explicit lifecycle
// via Start and Stop.
type Scheduler struct {
	cfg      Config
	store    job.Store
	resolver Resolver

	sem chan struct{} // bounds concurrent dispatches
	wg  sync.WaitGroup

	mu     sync.Mutex
	cancel context.CancelFunc

	inflightMu sync.Mutex
	inflight   map[string]struct{} // job IDs with a dispatch in progress
}

// New creates a Scheduler.
func New(store job.Store, resolver Resolver, cfg Config) (*Scheduler, error) {
	if store == nil {
		return nil, errors.New("scheduler: nil store")
	}
	if resolver == nil {
		return nil, errors.New("scheduler: nil resolver")
	}

	cfg = cfg.withDefaults()
	return &Scheduler{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		sem:      make(chan struct{}, cfg.MaxConcurrent),
		inflight: make(map[string]struct{}),
	}, nil
}

// Start launches the tick loop. Returns ErrAlreadyStarted if running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.cfg.Logger.Info("scheduler: started",
		"tick_interval", s.cfg.TickInterval,
		"dispatch_timeout", s.cfg.DispatchTimeout,
		"max_concurrent", s.cfg.MaxConcurrent,
	)
	return nil
}

// Stop cancels the loop and waits for in-flight dispatches, bounded by the
// given context.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.cancel()
	s.cancel = nil
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cfg.Logger.Info("scheduler: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run fires the tick loop until the context is canceled.
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick evaluates due-ness for every active job and dispatches the due
// ones. A store failure abandons the whole tick: acting on a partial job
// list could dispatch some jobs and silently starve others.
func (s *Scheduler) tick(ctx context.Context) {
	tickCount.Inc()
	now := s.cfg.Now()

	jobs, err := s.store.ListActive(ctx)
	if err != nil {
		tickAbandonedCount.Inc()
		s.cfg.Logger.Error("scheduler: tick abandoned, job store unavailable", "error", err)
		return
	}

	for _, j := range jobs {
		if !Due(j, now) {
			continue
		}

		// A dispatch from a previous tick may still be running; never
		// duplicate it.
		if !s.tryAcquire(j.ID) {
			skippedInFlightCount.Inc()
			s.cfg.Logger.Warn("scheduler: job still running, skipping tick", "job", j.Name, "job_id", j.ID)
			continue
		}

		s.wg.Add(1)
		go func(j job.Job) {
			defer s.wg.Done()
			defer s.release(j.ID)

			select {
			case s.sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-s.sem }()

			s.dispatch(ctx, j)
		}(j)
	}
}

// dispatch executes one due job and, on success, commits the next
// occurrence. Failures leave the run bookkeeping untouched so the job is
// retried on the next tick. Nothing here may stop the loop.
func (s *Scheduler) dispatch(ctx context.Context, j job.Job) {
	start := s.cfg.Now()

	sched, err := cron.Parse(j.Schedule)
	if err != nil {
		// Skip for this tick; the record stays so the operator can fix it.
		dispatchCount.WithLabelValues(outcomeInvalidSchedule).Inc()
		s.cfg.Logger.Error("scheduler: invalid schedule expression", "job", j.Name, "job_id", j.ID, "error", err)
		return
	}

	next, err := sched.Next(start)
	if err != nil {
		// Never matches: skipped indefinitely, flagged for the operator.
		dispatchCount.WithLabelValues(outcomeUnsatisfiable).Inc()
		s.cfg.Logger.Warn("scheduler: schedule never matches, job skipped", "job", j.Name, "job_id", j.ID, "error", err)
		return
	}

	exec, err := s.resolver.Resolve(j.Name)
	if err != nil {
		dispatchCount.WithLabelValues(outcomeUnknownType).Inc()
		s.cfg.Logger.Error("scheduler: no executor for job", "job", j.Name, "job_id", j.ID, "error", err)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.DispatchTimeout)
	runErr := exec.Run(runCtx, j)
	cancel()

	if runErr != nil {
		dispatchCount.WithLabelValues(outcomeFailure).Inc()
		s.cfg.Logger.Error("scheduler: job failed", "job", j.Name, "job_id", j.ID, "executor", exec.Name(), "error", runErr)
		return
	}

	if err := s.store.UpdateRunTimestamps(ctx, j.ID, start, next); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			// Deleted while we were running it. Nothing left to book.
			dispatchCount.WithLabelValues(outcomeJobGone).Inc()
			s.cfg.Logger.Info("scheduler: job deleted during dispatch", "job", j.Name, "job_id", j.ID)
			return
		}
		dispatchCount.WithLabelValues(outcomeWriteError).Inc()
		s.cfg.Logger.Error("scheduler: run timestamp write failed", "job", j.Name, "job_id", j.ID, "error", err)
		return
	}

	dispatchCount.WithLabelValues(outcomeSuccess).Inc()
	s.cfg.Logger.Debug("scheduler: job completed", "job", j.Name, "job_id", j.ID, "next_run", next)
}

// tryAcquire marks a job as in flight. Returns false if a dispatch for the
// same job is already running.
func (s *Scheduler) tryAcquire(id string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if _, running := s.inflight[id]; running {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Scheduler) release(id string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, id)
}
