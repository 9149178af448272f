package rio

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	rt, err := New(append([]Option{WithStartImmediately()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(rt.Shutdown)
	return rt
}

func TestRuntime_IndependentTasksAllRun(t *testing.T) {
	rt := newTestRuntime(t, WithWorkers(4))

	const n = 50
	var count atomic.Int64
	for i := 0; i < n; i++ {
		_, err := rt.Submit(func() { count.Add(1) })
		require.NoError(t, err)
	}
	rt.WaitForAll()

	require.EqualValues(t, n, count.Load())
}

func TestRuntime_ChainOnSingleHandleRunsInSubmissionOrder(t *testing.T) {
	rt := newTestRuntime(t, WithWorkers(4))

	h := rt.Register()

	const n = 100
	var mu sync.Mutex
	var order []int

	for i := 0; i < n; i++ {
		i := i
		mode := Read
		if i%3 == 0 {
			mode = Write
		}
		_, err := rt.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}, Access{Handle: h, Mode: mode})
		require.NoError(t, err)
	}
	rt.WaitForAll()

	require.Len(t, order, n)
	for i, v := range order {
		// Writers (i%3 == 0) split the stream into groups; the two readers
		// inside a group may run concurrently, in either order.
		require.Equal(t, i/3, v/3, "tasks sharing a handle must terminate in submission order at write boundaries")
		if i%3 == 0 {
			require.Equal(t, i, v, "a writer must run alone at its submission position")
		}
	}
}

func TestRuntime_ConcurrentReadersAfterWrite(t *testing.T) {
	rt := newTestRuntime(t, WithWorkers(8))

	h := rt.Register()

	var writeDone atomic.Bool
	_, err := rt.Submit(func() {
		time.Sleep(10 * time.Millisecond)
		writeDone.Store(true)
	}, Access{Handle: h, Mode: Write})
	require.NoError(t, err)

	const readers = 20
	var readersRanAfterWrite atomic.Int64
	for i := 0; i < readers; i++ {
		_, err := rt.Submit(func() {
			if writeDone.Load() {
				readersRanAfterWrite.Add(1)
			}
		}, Access{Handle: h, Mode: Read})
		require.NoError(t, err)
	}
	rt.WaitForAll()

	require.EqualValues(t, readers, readersRanAfterWrite.Load())
}

func TestRuntime_DeterministicMappingRoutesByParity(t *testing.T) {
	rt := newTestRuntime(t, WithWorkers(2), WithMapping(RoundRobin))

	var mu sync.Mutex
	var worker0Order []TaskID

	done := make(chan struct{})
	var remaining atomic.Int64
	remaining.Store(10)

	for i := 0; i < 10; i++ {
		tid := TaskID(i + 1) // ids are assigned densely from 1
		id, err := rt.Submit(func() {
			// RoundRobin(tid, 2) routes odd ids to worker 1; only even ids
			// land on worker 0, so this records worker 0's execution order.
			if tid%2 == 0 {
				mu.Lock()
				worker0Order = append(worker0Order, tid)
				mu.Unlock()
			}
			if remaining.Add(-1) == 0 {
				close(done)
			}
		})
		require.NoError(t, err)
		require.Equal(t, tid, id)
		require.Equal(t, int(id%2), rt.cfg.Mapping(uint64(id), 2))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, worker0Order, 5)
	for i := 1; i < len(worker0Order); i++ {
		require.Less(t, worker0Order[i-1], worker0Order[i])
	}
}

func TestRuntime_SubmitUnknownHandleFails(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := rt.Submit(func() {}, Access{Handle: 999, Mode: Read})
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestRuntime_SubmitDuplicateHandleFails(t *testing.T) {
	rt := newTestRuntime(t)
	h := rt.Register()

	_, err := rt.Submit(func() {}, Access{Handle: h, Mode: Read}, Access{Handle: h, Mode: Write})
	require.ErrorIs(t, err, ErrInvalidAccess)
}

func TestRuntime_RejectedSubmitDoesNotBurnAnID(t *testing.T) {
	rt := newTestRuntime(t)
	h := rt.Register()

	_, err := rt.Submit(func() {}, Access{Handle: h, Mode: Read}, Access{Handle: h, Mode: Write})
	require.ErrorIs(t, err, ErrInvalidAccess)

	id, err := rt.Submit(func() {})
	require.NoError(t, err)
	require.Equal(t, TaskID(1), id, "a rejected submission must not consume a task id")
}

func TestRuntime_UnregisterUnknownFails(t *testing.T) {
	rt := newTestRuntime(t)

	err := rt.Unregister(123)
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestRuntime_UnregisterBusyFails(t *testing.T) {
	rt := newTestRuntime(t)
	h := rt.Register()

	block := make(chan struct{})
	_, err := rt.Submit(func() { <-block }, Access{Handle: h, Mode: Write})
	require.NoError(t, err)

	// RecordAccess happens synchronously inside Submit, before the kernel
	// ever runs, so the handle is already busy the instant Submit returns.
	err = rt.Unregister(h)
	require.ErrorIs(t, err, ErrHandleBusy)

	close(block)
	rt.WaitForAll()
	require.NoError(t, rt.Unregister(h))
}

func TestRuntime_SubmitAfterShutdownFails(t *testing.T) {
	rt, err := New(WithStartImmediately())
	require.NoError(t, err)
	rt.Shutdown()

	_, err = rt.Submit(func() {})
	require.ErrorIs(t, err, ErrRuntimeShutdown)
}

func TestRuntime_ShutdownIsIdempotent(t *testing.T) {
	rt, err := New(WithStartImmediately())
	require.NoError(t, err)

	rt.Shutdown()
	rt.Shutdown()
}

func TestRuntime_PanicIsForwardedOnce(t *testing.T) {
	var mu sync.Mutex
	var forwarded []error

	rt, err := New(
		WithStartImmediately(),
		WithPanicHandler(func(e error) {
			mu.Lock()
			forwarded = append(forwarded, e)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)
	t.Cleanup(rt.Shutdown)

	for i := 0; i < 3; i++ {
		_, err := rt.Submit(func() { panic("boom") })
		require.NoError(t, err)
	}
	rt.WaitForAll()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(forwarded) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	var pe *PanicError
	require.ErrorAs(t, forwarded[0], &pe)

	tid, ok := ExtractTaskID(forwarded[0])
	require.True(t, ok, "a forwarded panic must carry its task id")
	require.Equal(t, pe.Task, tid)
}

func TestRuntime_StatsReportsOutstanding(t *testing.T) {
	rt := newTestRuntime(t, WithWorkers(1))

	block := make(chan struct{})
	_, err := rt.Submit(func() { <-block })
	require.NoError(t, err)
	_, err = rt.Submit(func() {})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return rt.Stats().Outstanding == 2
	}, time.Second, time.Millisecond)

	close(block)
	rt.WaitForAll()
	require.Zero(t, rt.Stats().Outstanding)
}

func TestRuntime_OnTaskReadyAndDoneHooks(t *testing.T) {
	var readyCount, doneCount atomic.Int64

	rt, err := New(
		WithStartImmediately(),
		WithOnTaskReady(func(TaskID) { readyCount.Add(1) }),
		WithOnTaskDone(func(TaskID) { doneCount.Add(1) }),
	)
	require.NoError(t, err)
	t.Cleanup(rt.Shutdown)

	const n = 10
	for i := 0; i < n; i++ {
		_, err := rt.Submit(func() {})
		require.NoError(t, err)
	}
	rt.WaitForAll()

	require.EqualValues(t, n, readyCount.Load())
	require.EqualValues(t, n, doneCount.Load())
}
