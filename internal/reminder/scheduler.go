package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	sweeperDependencyNameConstant = "sweeper"
	sweepFailedMessageConstant    = "reminder sweep failed"
	sweepStartedMessageConstant   = "reminder sweep started"
	sweepTimeFieldNameConstant    = "sweep_time"
)

// Clock supplies the current time, allowing tests to control scheduling.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sweeper performs one reminder pass anchored at the provided moment.
type Sweeper interface {
	Sweep(executionContext context.Context, now time.Time) error
}

// Scheduler repeats reminder sweeps on a polling loop. Sweeps run only at or
// after the daily start time and keep the configured minimum spacing; the
// first eligible attempt always sweeps.
type Scheduler struct {
	sweeper   Sweeper
	settings  ScheduleSettings
	clock     Clock
	logger    *zap.Logger
	lastSweep time.Time
}

// NewScheduler validates dependencies and constructs a Scheduler.
func NewScheduler(sweeper Sweeper, settings ScheduleSettings, clock Clock, logger *zap.Logger) (*Scheduler, error) {
	if sweeper == nil {
		return nil, fmt.Errorf(requiredDependencyTemplateConstant, sweeperDependencyNameConstant)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = time.Duration(defaultPollIntervalSecondsConstant) * time.Second
	}
	if settings.MinimumInterval <= 0 {
		settings.MinimumInterval = time.Duration(defaultMinimumIntervalMinutesConstant) * time.Minute
	}

	return &Scheduler{
		sweeper:  sweeper,
		settings: settings,
		clock:    clock,
		logger:   logger,
	}, nil
}

// Run polls until the context is cancelled, sweeping whenever TrySweep allows.
func (scheduler *Scheduler) Run(executionContext context.Context) error {
	ticker := time.NewTicker(scheduler.settings.PollInterval)
	defer ticker.Stop()

	for {
		scheduler.TrySweep(executionContext)
		select {
		case <-executionContext.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// TrySweep runs one sweep when the schedule allows it and reports whether a
// sweep happened. Sweep failures are logged, not returned, so one failed pass
// never stops the loop.
func (scheduler *Scheduler) TrySweep(executionContext context.Context) bool {
	now := scheduler.clock.Now()
	dailyStart := scheduler.settings.DailyStart.OnDate(now)
	if now.Before(dailyStart) {
		return false
	}
	if !scheduler.lastSweep.IsZero() && now.Sub(scheduler.lastSweep) <= scheduler.settings.MinimumInterval {
		return false
	}

	scheduler.lastSweep = now
	scheduler.logger.Debug(sweepStartedMessageConstant, zap.Time(sweepTimeFieldNameConstant, now))
	if sweepError := scheduler.sweeper.Sweep(executionContext, now); sweepError != nil {
		scheduler.logger.Warn(sweepFailedMessageConstant, zap.Error(sweepError))
	}
	return true
}
