// Package jobs runs the periodic background work of the portal.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jasonlvhit/gocron"

	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
)

// SweepJob periodically advances requisitions stuck past the stage timeout.
type SweepJob struct {
	sweep    portssvc.SweepSvc
	interval time.Duration
	logger   *slog.Logger
}

// NewSweepJob creates a job running sweep every interval. Sub-second intervals are rounded up to one second.
func NewSweepJob(sweep portssvc.SweepSvc, interval time.Duration, logger *slog.Logger) *SweepJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &SweepJob{sweep: sweep, interval: interval, logger: logger.With(slog.String("job", "stage_sweep"))}
}

// Process performs a single sweep. Each run gets at most one interval to finish.
func (j *SweepJob) Process() {
	ctx, cancel := context.WithTimeout(context.Background(), j.runTimeout())
	defer cancel()

	started := time.Now()
	advanced, err := j.sweep.Run(ctx)
	if err != nil {
		j.logger.Error("Stage sweep failed", slog.String("error", err.Error()), slog.Int("advanced", advanced))
		return
	}
	if advanced > 0 {
		j.logger.Info("Stage sweep advanced requisitions", slog.Int("advanced", advanced), slog.Duration("took", time.Since(started)))
		return
	}
	j.logger.Debug("Stage sweep found nothing to advance")
}

func (j *SweepJob) runTimeout() time.Duration {
	if j.interval < time.Second {
		return time.Second
	}
	return j.interval
}

// Start schedules Process and returns a function stopping the scheduler.
func (j *SweepJob) Start() (stop func(), err error) {
	seconds := uint64(j.runTimeout() / time.Second)

	s := gocron.NewScheduler()
	if err := s.Every(seconds).Seconds().Do(j.Process); err != nil {
		s.Clear()
		return nil, fmt.Errorf("failed to schedule stage sweep: %w", err)
	}
	stopped := s.Start()

	j.logger.Info("Stage sweep scheduled", slog.Duration("interval", time.Duration(seconds)*time.Second))
	// the ticker goroutine owns the job list once started, so stopping only signals it
	return func() {
		stopped <- true
	}, nil
}
