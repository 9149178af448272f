package rio

import (
	"strconv"

	"github.com/CharlyCst/rio/internal/metrics"
)

// runtimeMetrics binds the configured metrics.Provider to the instruments a
// Runtime records into: submission/completion counts, per-worker in-flight
// gauges, and the two latencies that matter for a fine-grained STF
// scheduler — time blocked behind a dependency, and kernel execution time.
type runtimeMetrics struct {
	submitted   metrics.Counter
	completed   metrics.Counter
	waitSeconds metrics.Histogram
	execSeconds metrics.Histogram
	inflight    []metrics.UpDownCounter
}

func newRuntimeMetrics(p metrics.Provider, numWorkers int) *runtimeMetrics {
	m := &runtimeMetrics{
		submitted: p.Counter("rio_tasks_submitted_total",
			metrics.WithDescription("tasks submitted to the runtime"), metrics.WithUnit("1")),
		completed: p.Counter("rio_tasks_completed_total",
			metrics.WithDescription("tasks whose kernel has returned"), metrics.WithUnit("1")),
		waitSeconds: p.Histogram("rio_task_wait_seconds",
			metrics.WithDescription("time a task spent blocked behind its head-of-queue dependencies"),
			metrics.WithUnit("seconds")),
		execSeconds: p.Histogram("rio_task_exec_seconds",
			metrics.WithDescription("kernel execution duration"), metrics.WithUnit("seconds")),
		inflight: make([]metrics.UpDownCounter, numWorkers),
	}
	for i := range m.inflight {
		m.inflight[i] = p.UpDownCounter("rio_tasks_inflight",
			metrics.WithAttributes(map[string]string{"worker": strconv.Itoa(i)}))
	}
	return m
}
