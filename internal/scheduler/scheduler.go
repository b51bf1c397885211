package scheduler

import (
	"context"
	"fmt"
	"sync"

	"DataIngest/internal/ingest"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler re-runs the ingest sequence on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *ingest.Runner
	Log    *zap.Logger
	Ctx    context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, runner *ingest.Runner, log *zap.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	return &Scheduler{
		Cron:   c,
		Runner: runner,
		Log:    log,
		Ctx:    ctx,
	}
}

// Register adds the ingest task under the given six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register ingest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow executes the ingest task immediately. It is skipped, like a cron
// tick, when another run is still in progress.
func (s *Scheduler) RunNow() {
	s.runTask()
}

func (s *Scheduler) runTask() {
	if s.Ctx.Err() != nil {
		return
	}
	if !s.running.TryLock() {
		s.Log.Warn("ingest still running, skipping")
		return
	}
	defer s.running.Unlock()

	s.Log.Info("running scheduled ingest")
	res, err := s.Runner.Run(s.Ctx)
	if err != nil {
		s.Log.Error("scheduled ingest", zap.Error(err))
		return
	}
	if res.Fetch.Status != ingest.FetchWritten {
		s.Log.Warn("scheduled ingest produced no price file", zap.String("fetch_status", string(res.Fetch.Status)))
	}
}
