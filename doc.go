// Package rio implements the Rio ("Run-In-Order") Sequential Task Flow
// runtime: a scheduler that executes a stream of dynamically submitted tasks
// on a fixed pool of workers under dependency and consistency guarantees
// derived from the tasks' declared handle accesses.
//
// Model
//
// Callers register data handles, then submit tasks that declare which
// handles they access and in which mode (Read or Write). Each submitted task
// receives a strictly increasing TaskID and is routed to exactly one worker
// via a deterministic Mapping. Workers execute their assigned tasks in
// submission order; a task becomes eligible to run only once every earlier
// task it conflicts with on a shared handle has terminated. Two tasks
// conflict on a handle when at least one of them writes it.
//
// Constructors
//
//   - New(opts ...Option): builds a Runtime from functional options. Workers
//     do not start until Start is called, unless WithStartImmediately is set.
//
// Defaults
//
// Unless overridden, a newly constructed Runtime uses:
//   - Workers: runtime.GOMAXPROCS(0)
//   - Mapping: RoundRobin (task id mod worker count)
//   - Metrics: a no-op provider
//   - Logger: logrus at WarnLevel
//   - PanicHandler: re-panic, crashing the process
//
// Lifecycle
//
// Start begins worker execution; Submit enqueues tasks; WaitForAll blocks
// until every submitted task has terminated; Shutdown waits for quiescence,
// stops all workers, and joins them. Shutdown is safe to call more than
// once; only the first call does any work.
package rio
