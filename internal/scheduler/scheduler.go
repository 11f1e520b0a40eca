package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"feedsng/internal/logger"
	"feedsng/internal/service"
)

var (
	ErrAlreadyRunning = errors.New("scheduler already running")
	ErrInvalidConfig  = errors.New("invalid scheduler config")
)

// Sweeper runs one pass over every known feed.
type Sweeper interface {
	RefreshAll(ctx context.Context) (service.SweepResult, error)
}

type Config struct {
	InitialDelay   time.Duration
	UpdateInterval time.Duration
}

func (c Config) validate() error {
	if c.InitialDelay < 0 {
		return fmt.Errorf("%w: negative initial delay %s", ErrInvalidConfig, c.InitialDelay)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("%w: update interval must be positive, got %s", ErrInvalidConfig, c.UpdateInterval)
	}
	return nil
}

// Scheduler triggers a sweep on a fixed period. It is either stopped or
// running; a running scheduler owns one cron runner.
type Scheduler struct {
	sweeper Sweeper

	mu     sync.Mutex
	runner *cron.Cron
}

func New(sweeper Sweeper) *Scheduler {
	return &Scheduler{sweeper: sweeper}
}

// Start arms the timer. The first sweep runs after cfg.InitialDelay and the
// following ones on every cfg.UpdateInterval boundary after it.
func (s *Scheduler) Start(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runner != nil {
		return ErrAlreadyRunning
	}

	log := cronLogger{}
	runner := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	runner.Schedule(newFixedPeriod(time.Now(), cfg), cron.FuncJob(s.sweep))
	runner.Start()
	s.runner = runner

	logger.Info("scheduler started", "module", "scheduler", "action", "start", "resource", "sweep", "result", "ok",
		"initial_delay_ms", cfg.InitialDelay.Milliseconds(), "interval_ms", cfg.UpdateInterval.Milliseconds())
	return nil
}

// Stop disarms the timer without interrupting a running sweep. The returned
// context is done once that sweep has finished. Stopping a stopped scheduler
// is a no-op.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runner == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ctx := s.runner.Stop()
	s.runner = nil
	logger.Info("scheduler stopped", "module", "scheduler", "action", "stop", "resource", "sweep", "result", "ok")
	return ctx
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner != nil
}

func (s *Scheduler) sweep() {
	logger.Info("scheduled sweep started", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "ok")
	result, err := s.sweeper.RefreshAll(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRefreshing) {
			logger.Warn("scheduled sweep skipped", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "skipped")
			return
		}
		logger.Error("scheduled sweep failed", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "failed", "error", err)
		return
	}
	logger.Info("scheduled sweep completed", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "ok",
		"feeds", result.Feeds, "refreshed", result.Refreshed, "failed", result.Failed)
}

// fixedPeriod fires at first, first+interval, first+2*interval, ... The
// boundaries never drift with how long a sweep takes. The runner calls Next
// from its own goroutine only.
type fixedPeriod struct {
	first    time.Time
	interval time.Duration
	armed    bool
}

func newFixedPeriod(start time.Time, cfg Config) *fixedPeriod {
	return &fixedPeriod{first: start.Add(cfg.InitialDelay), interval: cfg.UpdateInterval}
}

// Next returns first on the initial call, even when the runner's clock has
// already passed it, and otherwise the first boundary strictly after t.
func (p *fixedPeriod) Next(t time.Time) time.Time {
	if !p.armed {
		p.armed = true
		return p.first
	}
	if t.Before(p.first) {
		return p.first
	}
	elapsed := t.Sub(p.first)
	return p.first.Add((elapsed/p.interval + 1) * p.interval)
}

// cronLogger routes the runner's own messages into the process logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug("cron "+msg, append([]any{"module", "scheduler"}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error("cron "+msg, append([]any{"module", "scheduler", "error", err}, keysAndValues...)...)
}
