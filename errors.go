package rio

import "errors"

const namespace = "rio"

var (
	// ErrUnknownHandle is returned by Submit when an access list names a
	// handle that is not currently registered.
	ErrUnknownHandle = errors.New(namespace + ": handle not registered")

	// ErrInvalidAccess is returned by Submit when a task's access list names
	// the same handle twice, or uses a mode other than Read or Write.
	ErrInvalidAccess = errors.New(namespace + ": invalid access list")

	// ErrHandleBusy is returned by Unregister when the handle still has
	// outstanding accesses.
	ErrHandleBusy = errors.New(namespace + ": handle has outstanding accesses")

	// ErrRuntimeShutdown is returned by Submit once Shutdown has been called.
	// Register and Unregister remain usable after shutdown: handle bookkeeping
	// is independent of the worker pool that Shutdown drains and stops.
	ErrRuntimeShutdown = errors.New(namespace + ": runtime has been shut down")

	// ErrInvalidConfig is returned by New when the assembled Config is not
	// usable.
	ErrInvalidConfig = errors.New(namespace + ": invalid configuration")
)
