package engine

import "errors"

// ErrExecutionInProgress is returned when a command, undo, or redo is
// requested while another one is still running. Callers retry; the
// engine never queues.
var ErrExecutionInProgress = errors.New("another operation is in progress")
