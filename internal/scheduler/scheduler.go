package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"appointment-booking/internal/usecase/commands"
)

// Job runs on a fixed interval. Run reports how many rows it touched.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int64, error)
}

type Intervals struct {
	Sweep   time.Duration
	Relay   time.Duration
	Cleanup time.Duration
}

// MaintenanceJobs maps the maintenance commands onto tickers. A zero interval disables that job.
func MaintenanceJobs(m commands.MaintenanceCommands, iv Intervals) []Job {
	jobs := []Job{
		{Name: "sweep_expired_pending", Interval: iv.Sweep, Run: func(ctx context.Context) (int64, error) {
			n, err := m.SweepExpiredPending(ctx)
			return int64(n), err
		}},
		{Name: "relay_outbox", Interval: iv.Relay, Run: func(ctx context.Context) (int64, error) {
			n, err := m.RelayOutbox(ctx)
			return int64(n), err
		}},
		{Name: "cleanup_idempotency", Interval: iv.Cleanup, Run: m.CleanupIdempotency},
	}

	enabled := jobs[:0]
	for _, j := range jobs {
		if j.Interval > 0 {
			enabled = append(enabled, j)
		}
	}
	return enabled
}

type Scheduler struct {
	jobs   []Job
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(jobs []Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{jobs: jobs, logger: logger}
}

// Start launches one goroutine per job. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, j := range s.jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, j)
		}()
	}
}

// Stop cancels all jobs and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, j Job) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	s.logger.Info("scheduler job started", "job", j.Name, "interval", j.Interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler job stopped", "job", j.Name)
			return
		case <-ticker.C:
			s.tick(ctx, j)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, j Job) {
	n, err := j.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("scheduler job failed", "job", j.Name, "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("scheduler job done", "job", j.Name, "affected", n)
	}
}
