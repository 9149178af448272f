package rio

// MappingFunc deterministically assigns a submitted task id to a worker index
// in [0, numWorkers). It must be a pure, total function, fixed for the
// Runtime's entire lifetime: given the mapping, each worker's queue is a
// deterministic subsequence of the global task stream, which is what lets
// the dependency resolver decide readiness from purely local knowledge.
type MappingFunc func(taskID uint64, numWorkers int) int

// RoundRobin assigns taskID mod numWorkers. It is Rio's default mapping.
func RoundRobin(taskID uint64, numWorkers int) int {
	return int(taskID % uint64(numWorkers))
}

// Pinned returns a MappingFunc that routes every task to workerID, regardless
// of task id or worker count. With a single-worker Runtime this degenerates
// scheduling to strict sequential execution in submission order.
func Pinned(workerID int) MappingFunc {
	return func(_ uint64, _ int) int { return workerID }
}
