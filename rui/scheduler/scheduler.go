package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// Job is a named background task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	sched   gocron.Scheduler
	timeout time.Duration
}

// New creates a scheduler driven by clock. Each run gets timeout to finish.
func New(clock clockwork.Clock, timeout time.Duration) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, timeout: timeout}, nil
}

// Add registers jobs. Runs of the same job never overlap.
func (s *Scheduler) Add(jobs ...Job) error {
	for _, job := range jobs {
		_, err := s.sched.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(s.run, job),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
		}
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		slog.Error("Background job failed",
			slog.String("type", "sys"),
			slog.String("job", job.Name),
			slog.Any("error", err))
		return
	}
	slog.Debug("Background job finished",
		slog.String("type", "sys"),
		slog.String("job", job.Name),
		slog.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
