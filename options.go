package rio

import (
	"github.com/sirupsen/logrus"

	"github.com/CharlyCst/rio/internal/metrics"
)

// Option configures a Runtime. Use New(opts...) to construct one.
type Option func(*Config)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithMapping overrides the task-id-to-worker mapping.
func WithMapping(fn MappingFunc) Option { return func(c *Config) { c.Mapping = fn } }

// WithMetrics sets the metrics provider instrumentation is recorded to.
func WithMetrics(p metrics.Provider) Option { return func(c *Config) { c.Metrics = p } }

// WithLogger sets the structured logger lifecycle events are recorded to.
func WithLogger(l *logrus.Entry) Option { return func(c *Config) { c.Logger = l } }

// WithPanicHandler overrides what happens the first time a kernel panics.
func WithPanicHandler(h func(error)) Option { return func(c *Config) { c.PanicHandler = h } }

// WithStartImmediately starts worker goroutines at construction.
func WithStartImmediately() Option { return func(c *Config) { c.StartImmediately = true } }

// WithQueueCapacity sets the initial capacity hint for each worker's pending
// queue.
func WithQueueCapacity(n int) Option { return func(c *Config) { c.QueueCapacity = n } }

// WithOnTaskReady registers a callback invoked when a task's dependencies
// become satisfied, just before it executes.
func WithOnTaskReady(fn func(TaskID)) Option { return func(c *Config) { c.OnTaskReady = fn } }

// WithOnTaskDone registers a callback invoked right after a task terminates.
func WithOnTaskDone(fn func(TaskID)) Option { return func(c *Config) { c.OnTaskDone = fn } }
