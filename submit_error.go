package rio

import (
	"errors"
	"fmt"
)

// TaskMetaError exposes correlation metadata for a failure. Submission
// failures (bad or unknown handles) only ever carry a HandleID — there is no
// task to blame yet. *PanicError is the one failure that carries a TaskID:
// by the time a kernel runs it has an assigned, confirmed id.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() (TaskID, bool)
	HandleID() (HandleID, bool)
}

type submitError struct {
	err error

	taskID  TaskID
	hasTask bool

	handle    HandleID
	hasHandle bool
}

func wrapHandleError(err error, h HandleID) error {
	return &submitError{err: err, handle: h, hasHandle: true}
}

func (e *submitError) Error() string { return e.err.Error() }
func (e *submitError) Unwrap() error { return e.err }

func (e *submitError) TaskID() (TaskID, bool)     { return e.taskID, e.hasTask }
func (e *submitError) HandleID() (HandleID, bool) { return e.handle, e.hasHandle }

func (e *submitError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "submit(handle=%v): %+v", e.handle, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task ID carried by err, if any. In practice this
// is only ever populated for a *PanicError reaching a PanicHandler.
func ExtractTaskID(err error) (TaskID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID()
	}
	return 0, false
}

// ExtractHandleID returns the handle ID carried by err, if any.
func ExtractHandleID(err error) (HandleID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.HandleID()
	}
	return 0, false
}
