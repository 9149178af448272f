package rio

import (
	"time"

	"github.com/CharlyCst/rio/internal/queue"
)

// workerStatus is a worker thread's position in its state machine: Idle
// while its queue is empty, Executing(tid) while a kernel runs, Stopped once
// Shutdown has drained it.
type workerStatus int

const (
	workerIdle workerStatus = iota
	workerExecuting
	workerStopped
)

// workerState is one worker's private scheduling state: its pending queue and
// a small readiness cache. Every field is read and written only while
// Runtime.mu is held — a workerState has no lock of its own.
type workerState struct {
	id     int
	queue  *queue.Queue[*Task]
	status workerStatus
	// current is the task id presently executing, valid only while status is
	// workerExecuting.
	current TaskID

	// lastGen/lastReady cache the readiness verdict for the current head of
	// queue. A head's readiness can only improve as earlier tasks terminate
	// elsewhere, and Runtime bumps generation only on termination (never on
	// submission, since a freshly submitted task always sorts after every
	// already-enqueued head), so a cached "ready" verdict never goes stale
	// and a cached "not ready" verdict is safe to keep until the next
	// termination.
	lastGen   uint64
	haveCache bool
	lastReady bool
}

func newWorkerState(id int, queueCapacity int) *workerState {
	var q *queue.Queue[*Task]
	if queueCapacity > 0 {
		q = queue.NewWithCapacity[*Task](queueCapacity)
	} else {
		q = queue.New[*Task]()
	}
	return &workerState{id: id, queue: q}
}

// invalidate drops the readiness cache, called whenever a new task becomes
// the head: after a pop, or when Submit pushes onto an empty queue. A
// generation change is caught separately by comparing lastGen.
func (w *workerState) invalidate() {
	w.haveCache = false
}

// executionResult carries a kernel's outcome back to the worker loop, outside
// of Runtime.mu: the timing fields feed metrics, and panic carries a
// recovered panic value (nil on normal return).
type executionResult struct {
	panic     any
	execStart time.Time
	execEnd   time.Time
}

// runKernel invokes t's kernel, recovering any panic rather than letting it
// unwind into the worker goroutine's run loop: a kernel is assumed total,
// but one kernel's panic must not silently corrupt scheduling state for
// every other worker.
func runKernel(t *Task) (res executionResult) {
	res.execStart = time.Now()
	defer func() {
		res.panic = recover()
		res.execEnd = time.Now()
	}()
	t.kernel()
	return res
}
