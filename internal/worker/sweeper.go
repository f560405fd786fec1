package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/observability"
)

// Sweepable removes expired records and reports how many went.
type Sweepable interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepJob runs Target every Interval.
type SweepJob struct {
	Name     string
	Interval time.Duration
	Target   Sweepable
}

// Sweeper runs periodic cleanup jobs until its context is cancelled.
type Sweeper struct {
	jobs    []SweepJob
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewSweeper builds a sweeper; jobs with a nil target or non-positive interval are skipped.
func NewSweeper(logger *zap.Logger, metrics *observability.Metrics, jobs ...SweepJob) *Sweeper {
	valid := make([]SweepJob, 0, len(jobs))
	for _, job := range jobs {
		if job.Target == nil || job.Interval <= 0 {
			continue
		}
		valid = append(valid, job)
	}
	return &Sweeper{jobs: valid, logger: logger, metrics: metrics}
}

// Run blocks until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job SweepJob) {
			defer wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context, job SweepJob) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context, job SweepJob) {
	removed, err := job.Target.Sweep(ctx)
	if err != nil {
		s.logger.Warn("sweep failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("sweep completed", zap.String("job", job.Name), zap.Int("removed", removed))
	}
	s.metrics.RecordSweep(job.Name, removed)
}
