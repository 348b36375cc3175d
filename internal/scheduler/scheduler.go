// Package scheduler triggers trading cycles and news ingestion on cron schedules.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

// NewsCollector runs one news ingestion pass
type NewsCollector interface {
	Collect(ctx context.Context) (int, error)
}

// Scheduler owns the cron instance. Each job skips a tick while its previous run is still going,
// so cycles never overlap.
type Scheduler struct {
	cron     *cron.Cron
	cycle    interfaces.Cycle
	news     NewsCollector
	notifier interfaces.Notifier
	ctx      context.Context

	// runMu serializes manual runs with scheduled ones
	runMu sync.Mutex
}

func NewScheduler(ctx context.Context, cycle interfaces.Cycle, news NewsCollector, notifier interfaces.Notifier) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{ctx: ctx})),
		),
		cycle:    cycle,
		news:     news,
		notifier: notifier,
		ctx:      ctx,
	}
}

// Register adds the cycle job and, when news is configured and newsSpec is set, the news job.
func (s *Scheduler) Register(cycleSpec, newsSpec string) error {
	skip := cron.SkipIfStillRunning(cronLogger{ctx: s.ctx})

	if _, err := s.cron.AddJob(cycleSpec, skip(cron.FuncJob(s.RunCycleNow))); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "register cycle job %q", cycleSpec)
	}
	if s.news != nil && newsSpec != "" {
		if _, err := s.cron.AddJob(newsSpec, skip(cron.FuncJob(s.RunNewsNow))); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "register news job %q", newsSpec)
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(s.ctx, "Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops scheduling and waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn(ctx, "Scheduler stop timed out with jobs still running")
	}
	logger.Info(ctx, "Scheduler stopped")
}

// RunCycleNow executes one trading cycle. Failed cycles are reported to the notifier.
func (s *Scheduler) RunCycleNow() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	result, err := s.cycle.Execute(s.ctx)
	if err == nil {
		return
	}

	event := types.Event{Kind: types.EventCycleFailed, Message: err.Error()}
	if result != nil {
		event.Epic = result.Epic
		event.Reference = result.CycleID
		event.Time = result.FinishedAt
	}
	if nerr := s.notifier.Notify(s.ctx, event); nerr != nil {
		logger.ErrorWithErr(s.ctx, "Failed to send cycle failure notification", nerr)
	}
}

// RunNewsNow executes one news ingestion pass.
func (s *Scheduler) RunNewsNow() {
	if s.news == nil {
		return
	}
	saved, err := s.news.Collect(s.ctx)
	if err != nil {
		logger.ErrorWithErr(s.ctx, "News collection failed", err, "saved", saved)
		return
	}
	logger.Info(s.ctx, "News collection finished", "saved", saved)
}

// cronLogger adapts the structured logger to cron.Logger
type cronLogger struct {
	ctx context.Context
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug(l.ctx, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.ErrorWithErr(l.ctx, "cron: "+msg, err, keysAndValues...)
}
