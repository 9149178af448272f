package rio

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/CharlyCst/rio/internal/metrics"
)

// Config holds Runtime configuration, built via New's functional options.
type Config struct {
	// Workers is the number of worker threads, one goroutine each, pinned for
	// the Runtime's lifetime. Zero (default) selects runtime.GOMAXPROCS(0).
	Workers int

	// Mapping assigns a submitted task id to a worker index. Must be
	// deterministic and fixed for the Runtime's lifetime. Default:
	// RoundRobin.
	Mapping MappingFunc

	// Metrics receives scheduling instrumentation (tasks submitted/completed,
	// per-worker in-flight count, wait/exec latency histograms).
	// Default: a no-op provider.
	Metrics metrics.Provider

	// Logger receives structured lifecycle events (runtime construction,
	// worker start, shutdown, kernel panics). Default: logrus at WarnLevel.
	Logger *logrus.Entry

	// PanicHandler receives a *PanicError the first time any kernel panics.
	// Default: re-panic, crashing the process.
	PanicHandler func(error)

	// StartImmediately starts worker goroutines at construction instead of
	// requiring an explicit call to Start.
	StartImmediately bool

	// QueueCapacity is an initial capacity hint for each worker's pending
	// queue. Zero uses Go's default slice growth.
	QueueCapacity int

	// OnTaskReady, if set, is invoked synchronously, while the scheduler's
	// internal lock is held, once a task's head-of-queue dependencies are
	// satisfied and it has been popped, before it is executed. Intended for tests
	// and instrumentation; it must not call back into the Runtime.
	OnTaskReady func(TaskID)

	// OnTaskDone, if set, is invoked synchronously after a task's kernel
	// returns and its handle accesses have been cleared. Same constraints as
	// OnTaskReady.
	OnTaskDone func(TaskID)
}

func defaultConfig() Config {
	return Config{
		Workers:          0,
		Mapping:          RoundRobin,
		Metrics:          metrics.NewNoopProvider(),
		Logger:           defaultLogger(),
		PanicHandler:     func(err error) { panic(err) },
		StartImmediately: false,
		QueueCapacity:    0,
	}
}

func defaultLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l.WithField("component", namespace)
}

// validateConfig performs lightweight invariant checks: an unusable Mapping
// or a negative worker count would otherwise only surface once the first
// task is submitted, far from the mistake.
func validateConfig(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: Workers must be >= 0, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if cfg.Mapping == nil {
		return fmt.Errorf("%w: Mapping must not be nil", ErrInvalidConfig)
	}
	if cfg.Metrics == nil {
		return fmt.Errorf("%w: Metrics must not be nil", ErrInvalidConfig)
	}
	if cfg.Logger == nil {
		return fmt.Errorf("%w: Logger must not be nil", ErrInvalidConfig)
	}
	if cfg.PanicHandler == nil {
		return fmt.Errorf("%w: PanicHandler must not be nil", ErrInvalidConfig)
	}
	return nil
}
