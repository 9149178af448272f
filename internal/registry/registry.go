// Package registry implements the data handle registry: stable identities
// for shared data objects, and for each handle the set of outstanding
// (submitted, not yet terminated) accesses against it.
//
// Registry is not internally synchronized. The caller (rio.Runtime) owns a
// single lock that serializes every call into a Registry, sharing it with
// the termination barrier's counter so a termination can never race past a
// concurrent WaitForAll check.
package registry

// HandleID identifies a registered data handle.
type HandleID uint64

// TaskID identifies a submitted task; it mirrors the root package's TaskID,
// duplicated here as its own type so this package has no dependency on the
// root module.
type TaskID uint64

// Mode is a handle access mode, restricted to the two modes the registry
// ever stores — not accessing a handle at all is simply the absence of a
// record, not a third mode.
type Mode uint8

const (
	ModeRead Mode = iota
	ModeWrite
)

// accessRecord is one outstanding (task, mode) pair recorded against a
// handle. Instances are recycled through a pool to cut allocation churn
// under high task-submission rates.
type accessRecord struct {
	task TaskID
	mode Mode
}

type handleEntry struct {
	outstanding map[TaskID]*accessRecord
}

// Registry holds per-handle dependency state.
type Registry struct {
	handles map[HandleID]*handleEntry
	next    HandleID
	nodes   recordPool
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		handles: make(map[HandleID]*handleEntry),
		nodes:   newRecordPool(),
	}
}

// Register creates a new handle with an empty outstanding-access list and
// returns its identity.
func (r *Registry) Register() HandleID {
	r.next++
	id := r.next
	r.handles[id] = &handleEntry{outstanding: make(map[TaskID]*accessRecord)}
	return id
}

// Known reports whether h currently refers to a registered handle.
func (r *Registry) Known(h HandleID) bool {
	_, ok := r.handles[h]
	return ok
}

// Unregister removes h. It returns false without modifying the registry if h
// is unknown or still has outstanding accesses; the caller maps that into
// the public error.
func (r *Registry) Unregister(h HandleID) bool {
	e, ok := r.handles[h]
	if !ok {
		return false
	}
	if len(e.outstanding) != 0 {
		return false
	}
	delete(r.handles, h)
	return true
}

// RecordAccess appends an outstanding access for task on handle h. The
// caller guarantees h is known and task has not already recorded an access
// on h — duplicate handles in one task's access list are rejected before
// this is ever called.
func (r *Registry) RecordAccess(h HandleID, task TaskID, mode Mode) {
	e, ok := r.handles[h]
	if !ok {
		return
	}
	rec := r.nodes.get()
	rec.task = task
	rec.mode = mode
	e.outstanding[task] = rec
}

// ClearAccess removes the outstanding access task had on handle h, called at
// task termination.
func (r *Registry) ClearAccess(h HandleID, task TaskID) {
	e, ok := r.handles[h]
	if !ok {
		return
	}
	rec, ok := e.outstanding[task]
	if !ok {
		return
	}
	delete(e.outstanding, task)
	r.nodes.put(rec)
}

// MinWrite returns the smallest task id among h's outstanding Write
// accesses, and whether any exist.
func (r *Registry) MinWrite(h HandleID) (TaskID, bool) {
	e, ok := r.handles[h]
	if !ok {
		return 0, false
	}
	var (
		min   TaskID
		found bool
	)
	for _, rec := range e.outstanding {
		if rec.mode != ModeWrite {
			continue
		}
		if !found || rec.task < min {
			min = rec.task
			found = true
		}
	}
	return min, found
}

// MinAny returns the smallest task id among any of h's outstanding accesses,
// and whether any exist.
func (r *Registry) MinAny(h HandleID) (TaskID, bool) {
	e, ok := r.handles[h]
	if !ok {
		return 0, false
	}
	var (
		min   TaskID
		found bool
	)
	for _, rec := range e.outstanding {
		if !found || rec.task < min {
			min = rec.task
			found = true
		}
	}
	return min, found
}
