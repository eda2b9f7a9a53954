// Package history maintains the bounded undo/redo record of executed
// commands.
//
// The store is linear: an ordered sequence of entries plus a current-index
// pointer. Entries past the pointer form the redo branch and are discarded
// the moment a new command is recorded. The sequence is bounded; recording
// past the bound evicts the oldest entry and moves the pointer in lockstep
// so it keeps addressing the same logical entry.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gridstorm/internal/command"
	"github.com/dshills/gridstorm/internal/engine/snapshot"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the store when no limit is configured.
const DefaultMaxEntries = 100

// Entry records one successfully executed command with its before and
// after snapshots. Entries are owned by the store from creation until
// eviction and are never mutated after that.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string
	// Command is the executed command.
	Command command.Command
	// Before is the state captured before execution; nil when capture
	// was unavailable, in which case undoing this entry is a no-op.
	Before snapshot.Snapshot
	// After is the state captured after execution; nil when capture
	// was unavailable, in which case redoing this entry is a no-op.
	After snapshot.Snapshot
	// Timestamp is when the entry was recorded.
	Timestamp time.Time
	// Description is the human-readable summary of the command.
	Description string
}

// NewEntry builds an entry for a successfully executed command.
func NewEntry(cmd command.Command, before, after snapshot.Snapshot) *Entry {
	return &Entry{
		ID:          uuid.NewString(),
		Command:     cmd,
		Before:      before,
		After:       after,
		Timestamp:   time.Now(),
		Description: cmd.Describe(),
	}
}

// EntryInfo is a read-only view of one entry's position in the store.
type EntryInfo struct {
	// ID is the entry identifier.
	ID string
	// Description is the entry's command summary.
	Description string
	// Timestamp is when the entry was recorded.
	Timestamp time.Time
	// Current marks the entry at the undo pointer.
	Current bool
	// Undoable marks entries at or before the pointer.
	Undoable bool
	// Redoable marks entries past the pointer (the redo branch).
	Redoable bool
}

// Store is a bounded, linear undo/redo store.
type Store struct {
	mu sync.Mutex

	entries []*Entry
	current int

	maxEntries int
}

// NewStore creates a store bounded to maxEntries. Non-positive values use
// DefaultMaxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{current: -1, maxEntries: maxEntries}
}

// Record appends an entry, discarding any redo branch first. When the
// store exceeds its bound the oldest entry is evicted and the pointer
// decremented in lockstep.
func (s *Store) Record(entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries[:s.current+1], entry)
	s.current++

	if len(s.entries) > s.maxEntries {
		excess := len(s.entries) - s.maxEntries
		s.entries = s.entries[excess:]
		s.current -= excess
	}
}

// Undo applies the current entry's before-state and steps the pointer
// back. The pointer is unchanged when apply fails, and apply runs without
// the store lock held.
func (s *Store) Undo(apply func(*Entry) error) error {
	s.mu.Lock()
	if s.current < 0 {
		s.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := s.entries[s.current]
	s.mu.Unlock()

	if err := apply(entry); err != nil {
		return err
	}

	s.mu.Lock()
	s.current--
	s.mu.Unlock()
	return nil
}

// Redo applies the next entry's after-state and advances the pointer. The
// advance is rolled back when apply fails so the pointer never moves past
// a failed redo.
func (s *Store) Redo(apply func(*Entry) error) error {
	s.mu.Lock()
	if s.current >= len(s.entries)-1 {
		s.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := s.entries[s.current+1]
	s.mu.Unlock()

	if err := apply(entry); err != nil {
		return err
	}

	s.mu.Lock()
	s.current++
	s.mu.Unlock()
	return nil
}

// CanUndo returns true if an entry is available to undo.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current >= 0
}

// CanRedo returns true if a redo branch exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current < len(s.entries)-1
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// CurrentIndex returns the undo pointer (-1 when nothing is undoable).
func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// List returns a read-only, ordered view of the store.
func (s *Store) List() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]EntryInfo, len(s.entries))
	for i, entry := range s.entries {
		out[i] = EntryInfo{
			ID:          entry.ID,
			Description: entry.Description,
			Timestamp:   entry.Timestamp,
			Current:     i == s.current,
			Undoable:    i <= s.current,
			Redoable:    i > s.current,
		}
	}
	return out
}

// Clear resets the store to its initial empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.current = -1
}

// SetMaxEntries changes the bound. A smaller bound evicts oldest entries
// immediately, moving the pointer in lockstep.
func (s *Store) SetMaxEntries(maxEntries int) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = maxEntries
	if len(s.entries) > maxEntries {
		excess := len(s.entries) - maxEntries
		s.entries = s.entries[excess:]
		s.current -= excess
		if s.current < -1 {
			s.current = -1
		}
	}
}

// MaxEntries returns the configured bound.
func (s *Store) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
