// Package resolver implements the readiness predicate for the head task of
// a worker's queue, expressed over the minW/minA aggregates a Registry
// maintains.
package resolver

import "github.com/CharlyCst/rio/internal/registry"

// Access pairs a handle with the mode a task uses it in, the shape the
// resolver needs from a task's access list.
type Access struct {
	Handle registry.HandleID
	Mode   registry.Mode
}

// Aggregates is the read-only view of handle state the resolver needs.
// *registry.Registry satisfies it directly.
type Aggregates interface {
	MinWrite(h registry.HandleID) (registry.TaskID, bool)
	MinAny(h registry.HandleID) (registry.TaskID, bool)
}

// Ready reports whether the task identified by tid, with access list access,
// may begin executing now.
//
// For a Read on handle H, ready iff minW(H) >= tid; for a Write on H, ready
// iff minA(H) >= tid. Both aggregates already include tid's own outstanding
// entry on H (recorded at submission), so a task that is itself the minimum
// outstanding accessor on H trivially satisfies its own check (min == tid).
func Ready(agg Aggregates, tid registry.TaskID, access []Access) bool {
	for _, a := range access {
		switch a.Mode {
		case registry.ModeRead:
			if w, ok := agg.MinWrite(a.Handle); ok && w < tid {
				return false
			}
		case registry.ModeWrite:
			if m, ok := agg.MinAny(a.Handle); ok && m < tid {
				return false
			}
		}
	}
	return true
}
