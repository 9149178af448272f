package rio

import (
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CharlyCst/rio/internal/registry"
	"github.com/CharlyCst/rio/internal/resolver"
)

// Runtime is Rio's public entry point: a fixed pool of worker goroutines,
// each executing a strictly ordered, deterministic subset of submitted
// tasks, coordinated through a single lock.
type Runtime struct {
	cfg Config

	mu   sync.Mutex
	cond *sync.Cond

	registry *registry.Registry
	workers  []*workerState

	taskSeq    uint64
	barrier    barrierState
	generation uint64
	started    bool
	stopped    bool

	wg        sync.WaitGroup
	startOnce sync.Once
	shutdown  *shutdownCoordinator

	log     *logrus.Entry
	metrics *runtimeMetrics
	panics  *panicForwarder
}

// New constructs a Runtime. Workers are not started unless
// WithStartImmediately was given; call Start otherwise.
func New(opts ...Option) (*Runtime, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	rt := &Runtime{
		cfg:      cfg,
		registry: registry.New(),
		workers:  make([]*workerState, cfg.Workers),
		log:      cfg.Logger,
		metrics:  newRuntimeMetrics(cfg.Metrics, cfg.Workers),
		panics:   newPanicForwarder(cfg.PanicHandler),
	}
	rt.cond = sync.NewCond(&rt.mu)
	for i := range rt.workers {
		rt.workers[i] = newWorkerState(i, cfg.QueueCapacity)
	}
	rt.shutdown = &shutdownCoordinator{
		waitAll:     rt.WaitForAll,
		stop:        rt.stop,
		joinWorkers: rt.wg.Wait,
		closeSinks:  func() {},
	}

	rt.log.WithField("workers", cfg.Workers).Info("runtime constructed")

	if cfg.StartImmediately {
		rt.Start()
	}
	return rt, nil
}

// Start launches the worker goroutines. Calling Start more than once is a
// no-op; a Runtime's workers run for its entire lifetime.
func (rt *Runtime) Start() {
	rt.startOnce.Do(func() {
		rt.mu.Lock()
		rt.started = true
		rt.mu.Unlock()

		rt.wg.Add(len(rt.workers))
		for _, w := range rt.workers {
			w := w
			go rt.runWorkerLoop(w)
		}
		rt.log.Info("workers started")
	})
}

// Register creates a new data handle and returns its identity. Safe to call
// at any time, including concurrently with Submit.
func (rt *Runtime) Register() HandleID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return HandleID(rt.registry.Register())
}

// Unregister removes a handle. It fails with ErrHandleBusy if the handle
// still has outstanding accesses, and ErrUnknownHandle if h was never
// registered or was already unregistered.
func (rt *Runtime) Unregister(h HandleID) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !rt.registry.Known(registry.HandleID(h)) {
		return wrapHandleError(ErrUnknownHandle, h)
	}
	if !rt.registry.Unregister(registry.HandleID(h)) {
		return wrapHandleError(ErrHandleBusy, h)
	}
	return nil
}

// Submit assigns kernel a TaskID, appends it to the worker its mapping
// selects, and returns its id. Submission order across concurrent Submit
// callers is serialized by Runtime.mu, but Rio's supported configuration is
// a single submitter; concurrent submitters are safe, just untested.
//
// kernel runs with no Runtime lock held. It must not call WaitForAll: its own
// task stays outstanding until it returns, so the wait never ends.
func (rt *Runtime) Submit(kernel func(), access ...Access) (TaskID, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.stopped {
		return 0, ErrRuntimeShutdown
	}
	for _, a := range access {
		if !rt.registry.Known(registry.HandleID(a.Handle)) {
			return 0, wrapHandleError(ErrUnknownHandle, a.Handle)
		}
	}

	resolverAcc, err := validateAccess(access)
	if err != nil {
		return 0, err
	}

	rt.taskSeq++
	id := TaskID(rt.taskSeq)
	t := newTask(id, kernel, access, resolverAcc, time.Now())

	for _, a := range t.resolverAcc {
		rt.registry.RecordAccess(a.Handle, registry.TaskID(id), a.Mode)
	}
	rt.barrier.taskSubmitted()

	widx := rt.cfg.Mapping(uint64(id), len(rt.workers))
	w := rt.workers[widx]
	w.queue.Push(t)
	if w.queue.Len() == 1 {
		w.invalidate()
	}

	rt.metrics.submitted.Add(1)
	rt.cond.Broadcast()

	return id, nil
}

// WaitForAll blocks until every submitted task has terminated and its
// handle accesses cleared. It may be called repeatedly, including while
// further tasks are being submitted concurrently from elsewhere.
func (rt *Runtime) WaitForAll() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for !rt.barrier.quiescent() {
		rt.cond.Wait()
	}
}

// Shutdown stops accepting new work, waits for outstanding tasks to drain,
// and blocks until every worker goroutine has exited. Safe to call more than
// once; only the first call performs the sequence.
func (rt *Runtime) Shutdown() {
	rt.shutdown.run()
}

func (rt *Runtime) stop() {
	rt.mu.Lock()
	rt.stopped = true
	rt.mu.Unlock()
	rt.cond.Broadcast()
	rt.log.Info("runtime stopping")
}

// Snapshot is a point-in-time view of scheduling state, returned by Stats.
type Snapshot struct {
	Outstanding int
	QueueDepth  []int
}

// Stats returns a snapshot of current scheduling state. Intended for tests
// and operational introspection, not for steering scheduling decisions.
func (rt *Runtime) Stats() Snapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	snap := Snapshot{
		Outstanding: rt.barrier.outstanding,
		QueueDepth:  make([]int, len(rt.workers)),
	}
	for i, w := range rt.workers {
		snap.QueueDepth[i] = w.queue.Len()
	}
	return snap
}

// runWorkerLoop is the body of one worker goroutine: parking on rt.cond
// whenever its queue is empty or its head is not yet ready, waking on every
// submission and every termination anywhere in the Runtime.
func (rt *Runtime) runWorkerLoop(w *workerState) {
	defer rt.wg.Done()

	for {
		t, ok := rt.nextReadyTask(w)
		if !ok {
			return
		}
		rt.executeAndClear(w, t)
	}
}

// nextReadyTask blocks until w's head of queue is ready to execute, the
// Runtime has stopped and w's queue has drained, whichever comes first. On
// success it pops the task from w's queue before returning, holding
// Runtime.mu for the shortest span that keeps the pop and the readiness
// check atomic with every other worker's view of registry state.
func (rt *Runtime) nextReadyTask(w *workerState) (*Task, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	for {
		if rt.stopped && w.queue.Len() == 0 {
			w.status = workerStopped
			return nil, false
		}

		t, hasHead := w.queue.Front()
		if !hasHead {
			w.status = workerIdle
			rt.cond.Wait()
			continue
		}

		if !w.haveCache || w.lastGen != rt.generation {
			w.lastReady = resolver.Ready(rt.registry, registry.TaskID(t.ID()), t.resolverAcc)
			w.lastGen = rt.generation
			w.haveCache = true
		}
		if !w.lastReady {
			rt.cond.Wait()
			continue
		}

		w.queue.PopFront()
		w.status = workerExecuting
		w.current = t.ID()
		w.invalidate()
		rt.metrics.inflight[w.id].Add(1)

		if rt.cfg.OnTaskReady != nil {
			rt.cfg.OnTaskReady(t.ID())
		}
		return t, true
	}
}

// executeAndClear runs one task's kernel outside the lock, then re-acquires
// it to clear the task's handle accesses, bump the readiness generation, and
// wake every parked worker, all as one atomic termination step.
func (rt *Runtime) executeAndClear(w *workerState, t *Task) {
	waitSeconds := time.Since(t.submittedAt).Seconds()

	res := runKernel(t)

	rt.mu.Lock()
	for _, a := range t.resolverAcc {
		rt.registry.ClearAccess(a.Handle, registry.TaskID(t.ID()))
	}
	rt.generation++
	rt.barrier.taskTerminated()
	w.status = workerIdle
	rt.cond.Broadcast()
	rt.mu.Unlock()

	rt.metrics.inflight[w.id].Add(-1)
	rt.metrics.completed.Add(1)
	rt.metrics.waitSeconds.Record(waitSeconds)
	rt.metrics.execSeconds.Record(res.execEnd.Sub(res.execStart).Seconds())
	if rt.cfg.OnTaskDone != nil {
		rt.cfg.OnTaskDone(t.ID())
	}

	if res.panic != nil {
		rt.log.WithField("task", t.ID()).Error("kernel panicked")
		rt.panics.forward(&PanicError{Task: t.ID(), Value: res.panic})
	}
}
