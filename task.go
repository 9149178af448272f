package rio

import (
	"time"

	"github.com/CharlyCst/rio/internal/registry"
	"github.com/CharlyCst/rio/internal/resolver"
)

// TaskID strictly increases in submission order; it defines the global
// sequential order tasks are linearized against.
type TaskID uint64

// HandleID identifies a registered data handle.
type HandleID uint64

// AccessMode is how a task uses a handle. Only Read and Write are ever
// recorded; not accessing a handle at all is expressed simply by omitting it
// from a task's access list.
type AccessMode int

const (
	Read AccessMode = iota
	Write
)

func (m AccessMode) String() string {
	switch m {
	case Read:
		return "Read"
	case Write:
		return "Write"
	default:
		return "Invalid"
	}
}

// Access pairs a handle with the mode a task uses it in.
type Access struct {
	Handle HandleID
	Mode   AccessMode
}

// Task is an immutable record of a kernel and the handles it accesses,
// assigned a TaskID at submission.
type Task struct {
	id          TaskID
	kernel      func()
	access      []Access
	resolverAcc []resolver.Access
	submittedAt time.Time
}

// ID returns the task's submission identifier.
func (t *Task) ID() TaskID { return t.id }

// validateAccess checks an access list for the two ways it can be malformed
// — an unsupported mode, or the same handle named twice — and converts it to
// the resolver's representation. It does not check that handles are
// registered — the caller (Runtime.Submit) does that while holding the
// registry lock, since "known" is a property of concurrent registry state,
// not of the access list alone.
//
// validateAccess is pure and must run before a TaskID is ever assigned: a
// rejected submission must not consume an id, or task ids would no longer be
// densely assigned in submission order.
func validateAccess(access []Access) ([]resolver.Access, error) {
	seen := make(map[HandleID]struct{}, len(access))
	resolverAcc := make([]resolver.Access, 0, len(access))
	for _, a := range access {
		if a.Mode != Read && a.Mode != Write {
			return nil, wrapHandleError(ErrInvalidAccess, a.Handle)
		}
		if _, dup := seen[a.Handle]; dup {
			return nil, wrapHandleError(ErrInvalidAccess, a.Handle)
		}
		seen[a.Handle] = struct{}{}

		mode := registry.ModeRead
		if a.Mode == Write {
			mode = registry.ModeWrite
		}
		resolverAcc = append(resolverAcc, resolver.Access{
			Handle: registry.HandleID(a.Handle),
			Mode:   mode,
		})
	}
	return resolverAcc, nil
}

// newTask builds an immutable Task from an id and an already-validated
// access list (see validateAccess).
func newTask(id TaskID, kernel func(), access []Access, resolverAcc []resolver.Access, now time.Time) *Task {
	return &Task{
		id:          id,
		kernel:      kernel,
		access:      append([]Access(nil), access...),
		resolverAcc: resolverAcc,
		submittedAt: now,
	}
}
