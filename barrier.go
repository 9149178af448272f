package rio

// barrierState tracks a count of tasks submitted but not yet terminated, the
// condition WaitForAll blocks on. Its zero value is a valid, empty barrier.
// All methods assume the caller holds Runtime.mu — the same lock that
// protects handle state, so a termination can never be missed between the
// check and the wait.
type barrierState struct {
	outstanding int
}

func (b *barrierState) taskSubmitted() { b.outstanding++ }
func (b *barrierState) taskTerminated() { b.outstanding-- }
func (b *barrierState) quiescent() bool { return b.outstanding == 0 }
