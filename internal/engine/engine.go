// Package engine ties command execution, snapshot capture, and history
// into the single entry point callers use to mutate a document.
//
// Execution is strictly serialized: one command, undo, or redo at a time.
// A second caller is rejected with ErrExecutionInProgress rather than
// queued, so a stuck backend cannot pile up work behind it.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dshills/gridstorm/internal/backend"
	"github.com/dshills/gridstorm/internal/command"
	"github.com/dshills/gridstorm/internal/engine/history"
	"github.com/dshills/gridstorm/internal/engine/runner"
	"github.com/dshills/gridstorm/internal/engine/snapshot"
	"github.com/dshills/gridstorm/internal/event"
	"github.com/dshills/gridstorm/internal/logging"
)

// Options configures a new Engine. The zero value is usable.
type Options struct {
	// MaxHistory bounds the undo history; <= 0 means the default bound.
	MaxHistory int
	// Logger receives engine diagnostics; nil discards them.
	Logger *logging.Logger
	// Bus receives lifecycle events; nil creates a private bus.
	Bus *event.Bus
}

// Engine executes commands against one backend connection and records
// them for undo. Engines are caller-owned; create one per connection.
type Engine struct {
	conn  backend.Connection
	run   *runner.Runner
	snaps *snapshot.Snapshotter
	hist  *history.Store
	bus   *event.Bus
	log   *logging.Logger

	busy atomic.Bool
}

// New creates an engine over a connection. If the connection supports
// selection notifications they are republished on the engine's bus.
func New(conn backend.Connection, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logging.Null
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	maxHistory := opts.MaxHistory
	if maxHistory <= 0 {
		maxHistory = history.DefaultMaxEntries
	}

	e := &Engine{
		conn:  conn,
		run:   runner.New(conn, log),
		snaps: snapshot.New(conn, log),
		hist:  history.NewStore(maxHistory),
		bus:   bus,
		log:   log.WithComponent("engine"),
	}

	if n, ok := conn.(backend.Notifier); ok {
		n.OnSelectionChanged(func(address string) {
			bus.Publish(event.Event{Type: event.SelectionChanged, Data: map[string]any{
				"address": address,
			}})
		})
	}
	return e
}

// Bus returns the engine's event bus for subscriptions.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Execute validates and runs one command, capturing before/after state
// of its affected ranges so it can be undone. A failed command records
// nothing. When the backend is unreachable at capture time execution
// proceeds with a nil snapshot and the step becomes un-undoable.
func (e *Engine) Execute(ctx context.Context, cmd command.Command) (res runner.Result) {
	if !e.busy.CompareAndSwap(false, true) {
		return runner.Error(ErrExecutionInProgress)
	}
	defer e.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("command %s panicked: %v", cmd.Kind(), r)
			res = runner.Errorf("command %s panicked: %v", cmd.Kind(), r)
		}
	}()

	if err := cmd.Validate(); err != nil {
		return runner.Error(err)
	}

	before := e.snaps.Capture(ctx, cmd.AffectedRanges)
	res = e.run.Run(ctx, cmd)
	if res.IsOK() {
		after := e.snaps.Capture(ctx, cmd.AffectedRanges)
		e.hist.Record(history.NewEntry(cmd, before, after))
	}

	e.bus.Publish(event.Event{Type: event.CommandExecuted, Data: map[string]any{
		"kind":        cmd.Kind().String(),
		"description": cmd.Describe(),
		"success":     res.IsOK(),
	}})
	return res
}

// Undo restores the before-state of the most recent recorded command.
// An entry captured without a snapshot is skipped over as a no-op.
func (e *Engine) Undo(ctx context.Context) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrExecutionInProgress
	}
	defer e.busy.Store(false)

	err := e.hist.Undo(func(entry *history.Entry) error {
		if entry.Before == nil {
			e.log.Warn("undo %q: no captured state, skipping restore", entry.Description)
			return nil
		}
		if err := e.snaps.Restore(ctx, entry.Before); err != nil {
			return fmt.Errorf("undo %q: %w", entry.Description, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Publish(event.Event{Type: event.CommandUndone, Data: nil})
	return nil
}

// Redo re-applies the after-state of the most recently undone command.
func (e *Engine) Redo(ctx context.Context) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrExecutionInProgress
	}
	defer e.busy.Store(false)

	err := e.hist.Redo(func(entry *history.Entry) error {
		if entry.After == nil {
			e.log.Warn("redo %q: no captured state, skipping restore", entry.Description)
			return nil
		}
		if err := e.snaps.Restore(ctx, entry.After); err != nil {
			return fmt.Errorf("redo %q: %w", entry.Description, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Publish(event.Event{Type: event.CommandRedone, Data: nil})
	return nil
}

// CanUndo reports whether an entry is available behind the cursor.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether an undone entry is available ahead of the cursor.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// History lists recorded entries oldest-first.
func (e *Engine) History() []history.EntryInfo { return e.hist.List() }

// ClearHistory drops every recorded entry.
func (e *Engine) ClearHistory() { e.hist.Clear() }

// SetMaxHistory resizes the history bound, evicting oldest entries as
// needed. Values <= 0 reset to the default bound.
func (e *Engine) SetMaxHistory(n int) {
	if n <= 0 {
		n = history.DefaultMaxEntries
	}
	e.hist.SetMaxEntries(n)
}

// MaxHistory reports the current history bound.
func (e *Engine) MaxHistory() int { return e.hist.MaxEntries() }
