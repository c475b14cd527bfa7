package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultMaintenanceSchedule runs the sweep once a day at midnight.
const DefaultMaintenanceSchedule = "@daily"

// CodeSweeper clears verification codes past their expiry.
type CodeSweeper interface {
	ExpireStaleCodes(ctx context.Context) (int64, error)
}

// MaintenanceService runs the stale-code sweep on a cron schedule,
// independent of request traffic.
type MaintenanceService struct {
	Sweeper  CodeSweeper
	Logger   *slog.Logger
	Schedule string
	Timeout  time.Duration

	cron    *cron.Cron
	running atomic.Bool
}

// NewMaintenanceService parses schedule (standard five-field or a
// descriptor such as "@daily"); empty selects DefaultMaintenanceSchedule.
func NewMaintenanceService(sweeper CodeSweeper, logger *slog.Logger, schedule string) (*MaintenanceService, error) {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}

	s := &MaintenanceService{
		Sweeper:  sweeper,
		Logger:   logger,
		Schedule: schedule,
		Timeout:  time.Minute,
	}

	cl := cronLogger{logger}
	s.cron = cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the scheduler. It does not block.
func (s *MaintenanceService) Start() {
	s.cron.Start()
	s.running.Store(true)
	s.Logger.Info("maintenance service started", "schedule", s.Schedule)
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *MaintenanceService) Stop() {
	<-s.cron.Stop().Done()
	s.running.Store(false)
	s.Logger.Info("maintenance service stopped")
}

// Running reports whether the scheduler is started.
func (s *MaintenanceService) Running() bool { return s.running.Load() }

// RunOnce performs one sweep now.
func (s *MaintenanceService) RunOnce(ctx context.Context) (int64, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	n, err := s.Sweeper.ExpireStaleCodes(ctx)
	if err != nil {
		s.Logger.Error("stale code sweep failed", "error", err)
		return 0, err
	}
	s.Logger.Info("stale code sweep completed", "cleared", n)
	return n, nil
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
