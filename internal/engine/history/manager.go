package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrEntryOpen     = errors.New("history entry already open")
)

// Manager owns the undo and redo stacks of grouped geometry edits.
// One entry wraps exactly one gesture: Begin opens it, Commit pushes
// it onto the undo stack, Discard throws it away.
type Manager struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	current *Entry

	maxEntries int
	suppressed bool
}

// NewManager creates a history manager. maxEntries <= 0 selects the
// default of 1000.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Manager{maxEntries: maxEntries}
}

// Begin opens a new entry. Returns ErrEntryOpen if one is already
// open, or a nil entry without error while recording is suppressed.
func (m *Manager) Begin(label string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return nil, ErrEntryOpen
	}
	if m.suppressed {
		return nil, nil
	}
	m.current = &Entry{
		Label:     label,
		timestamp: time.Now(),
		open:      true,
	}
	return m.current, nil
}

// Commit closes the open entry and pushes it onto the undo stack.
// Entries with no changes are dropped. The redo stack is cleared.
func (m *Manager) Commit(e *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e == nil || e != m.current {
		return
	}
	m.current = nil
	e.open = false
	if len(e.Changes) == 0 {
		return
	}
	m.pushLocked(e)
}

// Discard closes the open entry without recording it.
func (m *Manager) Discard(e *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e == nil || e != m.current {
		return
	}
	e.open = false
	m.current = nil
}

func (m *Manager) pushLocked(e *Entry) {
	m.undoStack = append(m.undoStack, e)
	m.redoStack = nil
	if len(m.undoStack) > m.maxEntries {
		excess := len(m.undoStack) - m.maxEntries
		m.undoStack = m.undoStack[excess:]
	}
}

// Undo pops the newest entry and returns it for the caller to apply
// in reverse. Returns ErrNothingToUndo on an empty stack.
func (m *Manager) Undo() (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	e := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, e)
	return e, nil
}

// Redo pops the newest undone entry and returns it for the caller to
// reapply. Returns ErrNothingToRedo on an empty stack.
func (m *Manager) Redo() (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	e := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, e)
	return e, nil
}

// CanUndo returns true if an undo entry is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if a redo entry is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo entries.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// IsOpen returns true while an entry is open.
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// SetSuppressed toggles recording. While suppressed, Begin returns a
// nil entry and nothing reaches the stacks.
func (m *Manager) SetSuppressed(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressed = v
}

// IsSuppressed reports whether recording is suppressed.
func (m *Manager) IsSuppressed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suppressed
}

// Clear removes all undo and redo entries and any open entry.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = nil
	m.redoStack = nil
	m.current = nil
}
